package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBranding = Branding{
	AppName:     "Portal",
	CompanyName: "Acme",
	LoginURL:    "https://app.example.com/login",
	SupportURL:  "https://app.example.com/help",
}

func TestRender_AllKinds(t *testing.T) {
	exp := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	payload := Payload(
		WithName("Ann"),
		WithCode("123456"),
		WithResetURL("https://app.example.com/reset-password/abc"),
		WithExpiresAt(exp),
		WithTime(exp),
	)

	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			data := Compose(testBranding, kind, "ann@example.com", payload)
			subject, text, html, err := Render(kind, data)
			require.NoError(t, err)
			assert.NotEmpty(t, subject)
			assert.NotContains(t, subject, "\n")
			assert.Contains(t, text, "Ann")
			assert.Contains(t, html, "Ann")
			assert.NotContains(t, text, "<no value>")
		})
	}
}

func TestRender_VerificationCarriesCode(t *testing.T) {
	data := Compose(testBranding, VerificationEmail, "ann@example.com",
		Payload(WithName("Ann"), WithCode("654321")))
	subject, text, html, err := Render(VerificationEmail, data)
	require.NoError(t, err)
	assert.Equal(t, "Verify your Portal email", subject)
	assert.Contains(t, text, "654321")
	assert.Contains(t, html, "654321")
}

func TestRender_ResetCarriesLink(t *testing.T) {
	link := "https://app.example.com/reset-password/deadbeef"
	data := Compose(testBranding, PasswordReset, "ann@example.com", Payload(WithResetURL(link)))
	_, text, html, err := Render(PasswordReset, data)
	require.NoError(t, err)
	assert.Contains(t, text, link)
	assert.Contains(t, html, link)
	assert.Contains(t, text, "Hi there")
}

func TestRender_UnknownKind(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}

func TestCompose_PayloadOverridesBranding(t *testing.T) {
	data := Compose(testBranding, WelcomeEmail, "ann@example.com", map[string]any{"LoginURL": "https://other"})
	assert.Equal(t, "https://other", data["LoginURL"])
	assert.Equal(t, "ann@example.com", data["Email"])
	assert.Equal(t, WelcomeEmail, data["Type"])
	assert.Equal(t, "", data["Code"])
}
