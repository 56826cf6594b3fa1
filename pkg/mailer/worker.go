package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Worker turns queue messages into sends.
type Worker struct {
	Sender      Sender
	SendTimeout time.Duration
}

func NewWorker(sender Sender) *Worker {
	return &Worker{Sender: sender, SendTimeout: 15 * time.Second}
}

// Handle decodes and sends one message body. Errors wrapping ErrBadJob mean
// the message should be dropped; any other error is transient.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	subject, text, html, err := job.Render()
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send to %s: %w", job.To, err)
	}
	return nil
}
