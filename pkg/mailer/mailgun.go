package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// MailgunConfig binds a client to one sending domain. APIBase selects the
// region endpoint, for example mailgun.APIBaseEU; empty keeps the US default.
type MailgunConfig struct {
	Domain  string
	APIKey  string
	Sender  string
	APIBase string
	Timeout time.Duration
}

// Mailgun implements Sender over the Mailgun HTTP API.
type Mailgun struct {
	client  *mg.MailgunImpl
	Sender  string
	Timeout time.Duration
}

func NewMailgun(cfg MailgunConfig) (*Mailgun, error) {
	if cfg.Domain == "" || cfg.APIKey == "" || cfg.Sender == "" {
		return nil, errors.New("mailgun domain, api key and sender are required")
	}
	client := mg.NewMailgun(cfg.Domain, cfg.APIKey)
	if cfg.APIBase != "" {
		client.SetAPIBase(cfg.APIBase)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Mailgun{client: client, Sender: cfg.Sender, Timeout: timeout}, nil
}

// Send delivers one message. html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}

var _ Sender = (*Mailgun)(nil)
