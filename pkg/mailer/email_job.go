package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Producers normally set Template and Data and let the worker render; Subject,
// Text and HTML override the rendered parts when present.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // verify_email, welcome, application_received, application_status
	Data     map[string]any `json:"data,omitempty"`
}
