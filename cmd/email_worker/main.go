package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-jobboard-api/config"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
	"github.com/oksasatya/go-jobboard-api/pkg/mailer"
)

const sendTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	w := &worker{sender: mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), log: logger}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			w.handle(context.Background(), msg)
		}
		close(done)
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

// delivery is the part of amqp.Delivery the worker acknowledges through.
type delivery interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type worker struct {
	sender mailer.Sender
	log    *logrus.Logger
}

func (w *worker) handle(ctx context.Context, msg amqp.Delivery) {
	w.process(ctx, msg.Body, &msg)
}

// process renders and sends one job. Messages that cannot be decoded or
// rendered are dropped; a failed send goes back on the queue.
func (w *worker) process(ctx context.Context, body []byte, d delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.log.WithError(err).Warn("bad message")
		_ = d.Nack(false, false)
		return
	}

	subject, text, html, err := mailer.Render(job)
	if err != nil {
		w.log.WithFields(logrus.Fields{"template": job.Template, "to": job.To, "error": err.Error()}).Warn("render failed")
		_ = d.Nack(false, false)
		return
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		w.log.WithFields(logrus.Fields{"template": job.Template, "to": job.To, "error": err.Error()}).Error("send failed")
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
	w.log.WithFields(logrus.Fields{"template": job.Template, "to": job.To}).Info("email sent")
}
