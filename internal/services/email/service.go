package email

import (
	"bytes"
	"embed"
	"html"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Nazarious-ucu/news-collector/internal/models"
)

const (
	htmlHeaders    = "MIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\""
	summaryLimit   = 200
	welcomePrefix  = "歡迎訂閱 - "
	unknownValue   = "未知"
	untitledValue  = "無標題"
	newsletterTmpl = "templates/newsletter.html"
)

//go:embed templates/*.html
var templates embed.FS

// summaryPolicy keeps text only; the template escapes it again on render.
var summaryPolicy = bluemonday.StrictPolicy()

type Emailer interface {
	Send(to, subject, additionalHeaders, body string) error
}

type newsletterItem struct {
	Title     string
	URL       string
	Summary   string
	Source    string
	Published string
}

type newsletterData struct {
	Topic string
	Date  string
	Items []newsletterItem
}

// Service renders newsletters and hands them to an Emailer.
type Service struct {
	emailer Emailer
	tmpl    *template.Template
	now     func() time.Time
}

func NewService(emailer Emailer) (*Service, error) {
	tmpl, err := template.ParseFS(templates, newsletterTmpl)
	if err != nil {
		return nil, err
	}
	return &Service{emailer: emailer, tmpl: tmpl, now: time.Now}, nil
}

// SendNewsletter mails the news digest for topic.
func (s *Service) SendNewsletter(to, topic string, items []models.NewsItem) error {
	now := s.now()
	body, err := s.render(topic, now, items)
	if err != nil {
		return err
	}

	subject := "📰 " + topic + " - 新聞電子報 (" + now.Format("2006-01-02") + ")"
	return s.emailer.Send(to, subject, htmlHeaders, body)
}

// SendWelcome mails the first digest right after subscribing.
func (s *Service) SendWelcome(to, topic string, items []models.NewsItem) error {
	return s.SendNewsletter(to, welcomePrefix+topic, items)
}

func (s *Service) render(topic string, now time.Time, items []models.NewsItem) (string, error) {
	data := newsletterData{
		Topic: topic,
		Date:  now.Format("2006年01月02日"),
		Items: make([]newsletterItem, 0, len(items)),
	}
	for _, item := range items {
		data.Items = append(data.Items, toNewsletterItem(item))
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

func toNewsletterItem(item models.NewsItem) newsletterItem {
	out := newsletterItem{
		Title:     item.Title,
		URL:       item.URL,
		Summary:   CleanSummary(item.Summary),
		Source:    item.Source,
		Published: unknownValue,
	}
	if out.Title == "" {
		out.Title = untitledValue
	}
	if out.URL == "" {
		out.URL = "#"
	}
	if out.Source == "" {
		out.Source = unknownValue
	}
	if item.PublishedAt != nil {
		out.Published = item.PublishedAt.Format("2006-01-02")
	}
	return out
}

// CleanSummary strips HTML tags, decodes entities and cuts the text to 200 characters followed by "...".
func CleanSummary(summary string) string {
	clean := html.UnescapeString(summaryPolicy.Sanitize(summary))
	clean = strings.ReplaceAll(clean, "\u00a0", " ")
	if utf8.RuneCountInString(clean) <= summaryLimit {
		return clean
	}
	return string([]rune(clean)[:summaryLimit]) + "..."
}
