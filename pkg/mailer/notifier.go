package mailer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	tpl "github.com/oksasatya/go-auth-portal/pkg/mailer/templates"
)

// JSONPublisher is the part of RabbitPublisher the queue notifier needs.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// QueueNotifier hands emails to the worker through RabbitMQ.
// Branding is merged before publishing so the worker only renders.
type QueueNotifier struct {
	pub      JSONPublisher
	branding tpl.Branding
}

func NewQueueNotifier(pub JSONPublisher, branding tpl.Branding) *QueueNotifier {
	return &QueueNotifier{pub: pub, branding: branding}
}

func (n *QueueNotifier) Send(ctx context.Context, kind, to string, payload map[string]any) error {
	job := EmailJob{
		To:       to,
		Template: kind,
		Data:     tpl.Compose(n.branding, kind, to, payload),
	}
	if err := n.pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue %s email: %w", kind, err)
	}
	return nil
}

// DirectNotifier renders in-process and sends synchronously.
type DirectNotifier struct {
	sender   Sender
	branding tpl.Branding
}

func NewDirectNotifier(sender Sender, branding tpl.Branding) *DirectNotifier {
	return &DirectNotifier{sender: sender, branding: branding}
}

func (n *DirectNotifier) Send(ctx context.Context, kind, to string, payload map[string]any) error {
	subject, text, html, err := tpl.Render(kind, tpl.Compose(n.branding, kind, to, payload))
	if err != nil {
		return fmt.Errorf("render %s email: %w", kind, err)
	}
	if err := n.sender.Send(ctx, to, subject, text, html); err != nil {
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	return nil
}

// LogNotifier renders and logs instead of sending. Used when MAIL_DELIVERY=log.
type LogNotifier struct {
	logger   *logrus.Logger
	branding tpl.Branding
}

func NewLogNotifier(logger *logrus.Logger, branding tpl.Branding) *LogNotifier {
	return &LogNotifier{logger: logger, branding: branding}
}

func (n *LogNotifier) Send(_ context.Context, kind, to string, payload map[string]any) error {
	subject, text, _, err := tpl.Render(kind, tpl.Compose(n.branding, kind, to, payload))
	if err != nil {
		return fmt.Errorf("render %s email: %w", kind, err)
	}
	n.logger.WithFields(logrus.Fields{
		"kind":    kind,
		"to":      to,
		"subject": subject,
	}).Info("email (log delivery)")
	n.logger.Debug(text)
	return nil
}
