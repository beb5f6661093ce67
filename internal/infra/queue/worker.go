package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/vault-leads/internal/entity"
)

// LeadAnnouncer posts the lead to the operator channel (Slack).
type LeadAnnouncer interface {
	NotifyLeadCaptured(ctx context.Context, lead *entity.Lead) error
}

// WelcomeMailer greets the lead by email.
type WelcomeMailer interface {
	SendWelcome(to, name string) error
}

// Worker drains lead.captured events and fans them out. Either sink can
// be nil when its channel is not configured.
type Worker struct {
	Channel   *amqp.Channel
	Announcer LeadAnnouncer
	Mailer    WelcomeMailer
}

func NewWorker(ch *amqp.Channel, announcer LeadAnnouncer, mailer WelcomeMailer) *Worker {
	return &Worker{
		Channel:   ch,
		Announcer: announcer,
		Mailer:    mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] consume failed: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it
				// dead-letters instead of blocking the queue.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] lead.captured for %s", payload.Email)

			if err := w.process(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] fan-out failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) process(ctx context.Context, payload LeadCapturedPayload) error {
	lead := payload.toLead()

	var firstErr error

	if w.Announcer != nil {
		if err := w.Announcer.NotifyLeadCaptured(ctx, lead); err != nil {
			firstErr = err
		}
	}

	if w.Mailer != nil && lead.Email != "" {
		if err := w.Mailer.SendWelcome(lead.Email, lead.FullName); err != nil {
			log.Printf("⚠️ [WORKER] welcome email failed for %s: %s", lead.Email, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
