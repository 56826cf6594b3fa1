package mailer

import (
	"errors"
	"fmt"

	tpl "github.com/oksasatya/go-auth-portal/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or a pre-rendered Subject/Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // one of templates.Kinds
	Data     map[string]any `json:"data,omitempty"`
}

// ErrBadJob marks a queue message that can never be delivered and must not be requeued.
var ErrBadJob = errors.New("bad email job")

// Render resolves the final subject and bodies of a job. Template wins over
// pre-rendered fields.
func (j EmailJob) Render() (subject, text, html string, err error) {
	if j.To == "" {
		return "", "", "", fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if j.Template == "" {
		if j.Subject == "" || (j.Text == "" && j.HTML == "") {
			return "", "", "", fmt.Errorf("%w: nothing to send", ErrBadJob)
		}
		return j.Subject, j.Text, j.HTML, nil
	}
	subject, text, html, err = tpl.Render(j.Template, j.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: render %s: %v", ErrBadJob, j.Template, err)
	}
	return subject, text, html, nil
}
