package panel

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const (
	SuccessText = "訂閱成功！"
	FailureText = "訂閱失敗，請檢查網路連線"

	ClassSuccess = "success"
	ClassError   = "error"

	StatusHideDelay = 3000 * time.Millisecond
)

// Preferences loads and saves the remembered email and frequency. A nil Preferences disables both.
type Preferences interface {
	Load(ctx context.Context) (models.SavedPreferences, error)
	Save(ctx context.Context, saved models.SavedPreferences) error
}

type subscriber interface {
	Subscribe(ctx context.Context, req models.SubscriptionRequest) error
}

// Form holds the values of the three form fields.
type Form struct {
	Topic     string
	Frequency string
	Email     string
}

// DefaultForm is the form as it looks before anything is typed or restored.
func DefaultForm() Form {
	return Form{Frequency: models.FrequencyDaily}
}

// Outcome is what the status region shows after a submission.
type Outcome struct {
	Text  string
	Class string
	Err   error
}

func (o Outcome) Success() bool {
	return o.Class == ClassSuccess
}

// Controller runs the panel's two flows: restoring preferences and submitting.
type Controller struct {
	prefs  Preferences
	client subscriber
	log    zerolog.Logger
}

// NewController accepts a nil prefs when no store is available.
func NewController(prefs Preferences, client subscriber, logger zerolog.Logger) *Controller {
	logger = logger.With().Str("component", "PanelController").Logger()
	return &Controller{prefs: prefs, client: client, log: logger}
}

// Init returns the default form with the saved email and frequency applied.
func (c *Controller) Init(ctx context.Context) Form {
	form := DefaultForm()
	if c.prefs == nil {
		return form
	}

	saved, err := c.prefs.Load(ctx)
	if err != nil {
		c.log.Error().Err(err).Ctx(ctx).Msg("failed to load saved preferences")
		return form
	}

	if saved.LastEmail != "" {
		form.Email = saved.LastEmail
	}
	if saved.LastFrequency != "" {
		form.Frequency = saved.LastFrequency
	}

	return form
}

// Submit saves the email and frequency, then posts the request.
// Any error along the way collapses into the failure outcome.
func (c *Controller) Submit(ctx context.Context, req models.SubscriptionRequest) Outcome {
	if err := c.submit(ctx, req); err != nil {
		c.log.Error().Err(err).Ctx(ctx).
			Str("topic", req.Topic).
			Str("frequency", req.Frequency).
			Msg("subscription failed")
		return Outcome{Text: FailureText, Class: ClassError, Err: err}
	}

	c.log.Info().Ctx(ctx).Str("topic", req.Topic).Str("frequency", req.Frequency).Msg("subscribed")
	return Outcome{Text: SuccessText, Class: ClassSuccess}
}

func (c *Controller) submit(ctx context.Context, req models.SubscriptionRequest) error {
	if c.prefs != nil {
		err := c.prefs.Save(ctx, models.SavedPreferences{
			LastEmail:     req.Email,
			LastFrequency: req.Frequency,
		})
		if err != nil {
			return err
		}
	}

	return c.client.Subscribe(ctx, req)
}
