package prefs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

// Store is a small string key-value store scoped to one profile.
type Store interface {
	// Get returns the values of the requested keys that exist.
	Get(ctx context.Context, keys ...string) (map[string]string, error)
	// Set writes every entry of values, replacing previous values.
	Set(ctx context.Context, values map[string]string) error
	Close() error
}

// Preferences keeps the last submitted email and frequency.
type Preferences struct {
	store Store
	log   zerolog.Logger
}

func NewPreferences(store Store, logger zerolog.Logger) *Preferences {
	logger = logger.With().Str("component", "Preferences").Logger()
	return &Preferences{store: store, log: logger}
}

// Load reads both keys. Missing keys come back as empty strings.
func (p *Preferences) Load(ctx context.Context) (models.SavedPreferences, error) {
	values, err := p.store.Get(ctx, models.PrefLastEmail, models.PrefLastFrequency)
	if err != nil {
		return models.SavedPreferences{}, fmt.Errorf("load preferences: %w", err)
	}

	saved := models.SavedPreferences{
		LastEmail:     values[models.PrefLastEmail],
		LastFrequency: values[models.PrefLastFrequency],
	}
	p.log.Debug().Ctx(ctx).
		Bool("has_email", saved.LastEmail != "").
		Str("frequency", saved.LastFrequency).
		Msg("preferences loaded")

	return saved, nil
}

// Save overwrites both keys with the given values, empty ones included.
func (p *Preferences) Save(ctx context.Context, saved models.SavedPreferences) error {
	err := p.store.Set(ctx, map[string]string{
		models.PrefLastEmail:     saved.LastEmail,
		models.PrefLastFrequency: saved.LastFrequency,
	})
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	p.log.Debug().Ctx(ctx).Str("frequency", saved.LastFrequency).Msg("preferences saved")
	return nil
}
