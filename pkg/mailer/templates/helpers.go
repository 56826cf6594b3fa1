package templates

import (
	"encoding/json"
	"time"
)

const timeLayout = "02 January 2006, 15:04 MST"

// Branding is the static sender identity merged into every email.
type Branding struct {
	AppName        string
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	SupportURL     string
	LoginURL       string
}

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Basic info
	Name  string `json:"Name"`
	Email string `json:"Email"`
	Type  string `json:"Type"`

	// Company info
	AppName        string `json:"AppName"`
	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	LogoURL        string `json:"LogoURL"`
	SupportURL     string `json:"SupportURL"`
	LoginURL       string `json:"LoginURL"`

	// Event data
	Code          string `json:"Code"`
	ResetURL      string `json:"ResetURL"`
	ExpiresAtText string `json:"ExpiresAtText"`
	Time          string `json:"Time"`
}

// Option pattern
type Option func(map[string]any)

func WithName(name string) Option    { return func(m map[string]any) { m["Name"] = name } }
func WithCode(code string) Option    { return func(m map[string]any) { m["Code"] = code } }
func WithResetURL(url string) Option { return func(m map[string]any) { m["ResetURL"] = url } }
func WithTime(t time.Time) Option {
	return func(m map[string]any) { m["Time"] = t.UTC().Format(timeLayout) }
}
func WithExpiresAt(t time.Time) Option {
	return func(m map[string]any) { m["ExpiresAtText"] = t.UTC().Format(timeLayout) }
}

// Payload builds the event-specific part of an email.
func Payload(opts ...Option) map[string]any {
	m := map[string]any{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Compose merges branding, recipient and payload into the full template data.
// Every EmailData key is present in the result so templates never see a missing key.
func Compose(b Branding, kind, to string, payload map[string]any) map[string]any {
	m := ToMap(EmailData{
		Email:          to,
		Type:           kind,
		AppName:        b.AppName,
		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		LogoURL:        b.LogoURL,
		SupportURL:     b.SupportURL,
		LoginURL:       b.LoginURL,
	})
	for k, v := range payload {
		m[k] = v
	}
	return m
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}
