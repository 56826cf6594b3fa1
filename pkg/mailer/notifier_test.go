package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tpl "github.com/oksasatya/go-auth-portal/pkg/mailer/templates"
)

type fakePublisher struct {
	got []any
	err error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.got = append(f.got, body)
	return f.err
}

type sentMail struct{ to, subject, text, html string }

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return f.err
}

var branding = tpl.Branding{AppName: "Portal", CompanyName: "Acme"}

func TestQueueNotifier_PublishesComposedJob(t *testing.T) {
	pub := &fakePublisher{}
	n := NewQueueNotifier(pub, branding)

	err := n.Send(context.Background(), tpl.VerificationEmail, "a@b.io", tpl.Payload(tpl.WithCode("111111")))
	require.NoError(t, err)
	require.Len(t, pub.got, 1)

	job, ok := pub.got[0].(EmailJob)
	require.True(t, ok)
	assert.Equal(t, "a@b.io", job.To)
	assert.Equal(t, tpl.VerificationEmail, job.Template)
	assert.Equal(t, "111111", job.Data["Code"])
	assert.Equal(t, "Acme", job.Data["CompanyName"])
}

func TestQueueNotifier_PublishError(t *testing.T) {
	n := NewQueueNotifier(&fakePublisher{err: errors.New("closed")}, branding)
	err := n.Send(context.Background(), tpl.WelcomeEmail, "a@b.io", nil)
	assert.ErrorContains(t, err, "closed")
}

func TestDirectNotifier_RendersAndSends(t *testing.T) {
	s := &fakeSender{}
	n := NewDirectNotifier(s, branding)

	err := n.Send(context.Background(), tpl.PasswordReset, "a@b.io",
		tpl.Payload(tpl.WithResetURL("http://x/reset-password/tok")))
	require.NoError(t, err)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "a@b.io", s.sent[0].to)
	assert.Equal(t, "Reset your Portal password", s.sent[0].subject)
	assert.Contains(t, s.sent[0].text, "http://x/reset-password/tok")
}

func TestDirectNotifier_UnknownKind(t *testing.T) {
	s := &fakeSender{}
	err := NewDirectNotifier(s, branding).Send(context.Background(), "bogus", "a@b.io", nil)
	assert.Error(t, err)
	assert.Empty(t, s.sent)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	err := NewLogNotifier(logger, branding).Send(context.Background(), tpl.ResetSuccess, "a@b.io", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"kind":"reset_success"`)
	assert.Contains(t, buf.String(), `"to":"a@b.io"`)
}

func TestNewMailgun_RequiresCredentials(t *testing.T) {
	_, err := NewMailgun(MailgunConfig{Domain: "mg.example.com"})
	assert.Error(t, err)

	m, err := NewMailgun(MailgunConfig{Domain: "mg.example.com", APIKey: "key", Sender: "Portal <no-reply@example.com>"})
	require.NoError(t, err)
	assert.Equal(t, "Portal <no-reply@example.com>", m.Sender)
	assert.Equal(t, 10*time.Second, m.Timeout)
}
