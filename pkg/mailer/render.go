package mailer

import (
	"fmt"

	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
)

// EnsureRecipient fills the recipient fields templates rely on.
func (j *EmailJob) EnsureRecipient() {
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		j.Data["Email"] = j.To
	}
	if v, ok := j.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		j.Data["RecipientEmail"] = j.To
	}
}

// Render produces the final subject and bodies for j. Explicit Subject, Text
// and HTML on the job win over the rendered template parts.
func Render(j EmailJob) (subject, text, html string, err error) {
	subject, text, html = j.Subject, j.Text, j.HTML
	if j.Template == "" {
		if subject == "" || (text == "" && html == "") {
			return "", "", "", fmt.Errorf("email to %s has no template and no body", j.To)
		}
		return subject, text, html, nil
	}
	j.EnsureRecipient()
	s, t, h, err := mailtpl.Render(j.Template, j.Data)
	if err != nil {
		return "", "", "", err
	}
	if subject == "" {
		subject = s
	}
	if text == "" {
		text = t
	}
	if html == "" {
		html = h
	}
	return subject, text, html, nil
}
