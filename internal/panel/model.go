package panel

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

type formLoadedMsg struct {
	form Form
}

type submitResultMsg struct {
	outcome Outcome
}

type hideStatusMsg struct{}

type focusField int

const (
	focusTopic focusField = iota
	focusFrequency
	focusEmail
	focusSubmit
	focusCount
)

const inputWidth = 36

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Submit key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "frequency")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "subscribe")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "close")),
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(11).Foreground(lipgloss.Color("#A0A0A0"))
	focusedLabel = labelStyle.Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	optionStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#808080"))
	selectedOpt  = optionStyle.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7D56F4"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).MarginTop(1).Background(lipgloss.Color("#3C3C3C"))
	focusedBtn   = buttonStyle.Background(lipgloss.Color("#7D56F4")).Bold(true)
	statusStyles = map[string]lipgloss.Style{
		ClassSuccess: lipgloss.NewStyle().MarginTop(1).Padding(0, 1).
			Foreground(lipgloss.Color("#155724")).Background(lipgloss.Color("#D4EDDA")),
		ClassError: lipgloss.NewStyle().MarginTop(1).Padding(0, 1).
			Foreground(lipgloss.Color("#721C24")).Background(lipgloss.Color("#F8D7DA")),
	}
	helpStyle = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("#626262"))
)

type status struct {
	text    string
	class   string
	visible bool
}

// Model is the subscription panel.
type Model struct {
	ctx        context.Context
	controller *Controller

	topic     textinput.Model
	email     textinput.Model
	frequency int
	focus     focusField

	status    status
	hideDelay time.Duration

	keys keyMap
}

func NewModel(ctx context.Context, controller *Controller) Model {
	topic := textinput.New()
	topic.Placeholder = "e.g. artificial intelligence"
	topic.Prompt = ""
	topic.Width = inputWidth
	topic.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.Width = inputWidth

	return Model{
		ctx:        ctx,
		controller: controller,
		topic:      topic,
		email:      email,
		focus:      focusTopic,
		hideDelay:  StatusHideDelay,
		keys:       defaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	load := func() tea.Msg {
		return formLoadedMsg{form: controller.Init(ctx)}
	}
	return tea.Batch(load, textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formLoadedMsg:
		if msg.form.Email != "" {
			m.email.SetValue(msg.form.Email)
		}
		m.setFrequency(msg.form.Frequency)
		return m, nil

	case submitResultMsg:
		m.status = status{text: msg.outcome.Text, class: msg.outcome.Class, visible: true}
		if msg.outcome.Success() {
			m.reset()
		}
		return m, tea.Tick(m.hideDelay, func(time.Time) tea.Msg { return hideStatusMsg{} })

	case hideStatusMsg:
		m.status.visible = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			if !validEmail(m.email.Value()) {
				m.setFocus(focusEmail)
				return m, nil
			}
			return m, m.submit()
		case key.Matches(msg, m.keys.Next):
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, nil
		case m.focus == focusFrequency && key.Matches(msg, m.keys.Left):
			m.frequency = (m.frequency + len(models.Frequencies) - 1) % len(models.Frequencies)
			return m, nil
		case m.focus == focusFrequency && key.Matches(msg, m.keys.Right):
			m.frequency = (m.frequency + 1) % len(models.Frequencies)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTopic:
		m.topic, cmd = m.topic.Update(msg)
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
	case focusFrequency, focusSubmit, focusCount:
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("News Collector"))
	b.WriteString("\n")
	b.WriteString(m.label("Topic", focusTopic) + m.topic.View() + "\n")

	options := make([]string, 0, len(models.Frequencies))
	for i, f := range models.Frequencies {
		if i == m.frequency {
			options = append(options, selectedOpt.Render(f))
		} else {
			options = append(options, optionStyle.Render(f))
		}
	}
	b.WriteString(m.label("Frequency", focusFrequency) + lipgloss.JoinHorizontal(lipgloss.Top, options...) + "\n")
	b.WriteString(m.label("Email", focusEmail) + m.email.View() + "\n")

	btn := buttonStyle
	if m.focus == focusSubmit {
		btn = focusedBtn
	}
	b.WriteString(btn.Render("Subscribe"))

	if m.status.visible {
		b.WriteString("\n" + statusStyles[m.status.class].Render(m.status.text))
	}

	b.WriteString("\n" + helpStyle.Render("tab next · ←/→ frequency · enter subscribe · esc close"))
	return b.String()
}

// Form returns the current field values.
func (m Model) Form() Form {
	return Form{
		Topic:     m.topic.Value(),
		Frequency: models.Frequencies[m.frequency],
		Email:     m.email.Value(),
	}
}

func (m Model) submit() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	form := m.Form()
	req := models.SubscriptionRequest{Topic: form.Topic, Frequency: form.Frequency, Email: form.Email}

	return func() tea.Msg {
		return submitResultMsg{outcome: controller.Submit(ctx, req)}
	}
}

// validEmail accepts an empty value or a bare address, mirroring an email input field.
func validEmail(value string) bool {
	if value == "" {
		return true
	}
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value && strings.Contains(addr.Address, "@")
}

func (m *Model) reset() {
	m.topic.Reset()
	m.email.Reset()
	m.setFrequency(DefaultForm().Frequency)
}

// setFrequency ignores values that are not among the offered options.
func (m *Model) setFrequency(value string) {
	for i, f := range models.Frequencies {
		if f == value {
			m.frequency = i
			return
		}
	}
}

func (m *Model) setFocus(f focusField) {
	m.focus = f
	m.topic.Blur()
	m.email.Blur()
	switch f {
	case focusTopic:
		m.topic.Focus()
	case focusEmail:
		m.email.Focus()
	case focusFrequency, focusSubmit, focusCount:
	}
}

func (m Model) label(text string, f focusField) string {
	if m.focus == f {
		return focusedLabel.Render(text)
	}
	return labelStyle.Render(text)
}
