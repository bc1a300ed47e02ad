package templates

import (
	"time"

	"github.com/oksasatya/go-jobboard-api/config"
)

// Option pattern
type Option func(*EmailData)

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithExpiresIn(dur time.Duration) Option {
	return WithExpiresAt(time.Now().Add(dur))
}

// Brand holds the company fields merged into every outgoing email.
type Brand struct {
	AppName        string
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	SupportURL     string
	PrivacyURL     string
	UnsubscribeURL string
}

func BrandFromConfig(cfg *config.Config) Brand {
	return Brand{
		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
}

// Apply returns a copy of data with brand fields filled where missing.
func (b Brand) Apply(data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+7)
	for k, v := range data {
		out[k] = v
	}
	set := func(k, v string) {
		if cur, ok := out[k]; (!ok || cur == "" || cur == nil) && v != "" {
			out[k] = v
		}
	}
	set("AppName", b.AppName)
	set("CompanyName", b.CompanyName)
	set("CompanyAddress", b.CompanyAddress)
	set("LogoURL", b.LogoURL)
	set("SupportURL", b.SupportURL)
	set("PrivacyURL", b.PrivacyURL)
	set("UnsubscribeURL", b.UnsubscribeURL)
	return out
}

func newData(typ, name string, opts ...Option) EmailData {
	d := EmailData{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewVerifyEmailData(name, verifyURL string, opts ...Option) map[string]any {
	d := newData(VerifyEmail, name, opts...)
	d.VerifyURL = verifyURL
	return ToMap(d)
}

func NewWelcomeData(name, role string) map[string]any {
	d := newData(Welcome, name)
	d.Role = role
	return ToMap(d)
}

func NewApplicationReceivedData(name, jobTitle, company string) map[string]any {
	d := newData(ApplicationReceived, name)
	d.JobTitle = jobTitle
	d.JobCompany = company
	return ToMap(d)
}

func NewApplicationStatusData(name, jobTitle, company, status string) map[string]any {
	d := newData(ApplicationStatus, name)
	d.JobTitle = jobTitle
	d.JobCompany = company
	d.Status = status
	return ToMap(d)
}
