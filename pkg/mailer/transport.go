package mailer

import (
	"context"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/go-jobboard-api/pkg/mailer/templates"
)

// Transport hands a rendered-or-renderable email to its next hop.
type Transport interface {
	Deliver(ctx context.Context, job EmailJob) error
}

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueTransport publishes jobs for cmd/email_worker to render and send.
type QueueTransport struct {
	Pub Publisher
}

func (t QueueTransport) Deliver(ctx context.Context, job EmailJob) error {
	return t.Pub.PublishJSON(ctx, job)
}

// Sender is satisfied by *Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// SendTransport renders in-process and sends directly, for deployments
// without a broker.
type SendTransport struct {
	Sender Sender
}

func (t SendTransport) Deliver(ctx context.Context, job EmailJob) error {
	subject, text, html, err := Render(job)
	if err != nil {
		return err
	}
	return t.Sender.Send(ctx, job.To, subject, text, html)
}

// LogTransport only logs what would have been sent. Used when
// MAIL_SEND_ENABLED=false.
type LogTransport struct {
	Log *logrus.Logger
}

func (t LogTransport) Deliver(_ context.Context, job EmailJob) error {
	job.EnsureRecipient()
	subject := job.Subject
	if subject == "" && job.Template != "" {
		s, err := mailtpl.RenderSubject(job.Template, job.Data)
		if err != nil {
			return err
		}
		subject = s
	}
	if t.Log != nil {
		t.Log.WithFields(logrus.Fields{
			"to":       job.To,
			"template": job.Template,
			"subject":  subject,
		}).Info("email not sent (mail sending disabled)")
	}
	return nil
}
