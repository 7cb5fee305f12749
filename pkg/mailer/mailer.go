package mailer

import (
	"encoding/json"
	"fmt"

	"shopx/pkg/rabbitmq"
)

// Mailer sends an email to a single recipient. Delivery is at-least-once
// attempted; callers treat failures as non-fatal side effects.
type Mailer interface {
	Send(subject, to, name, body string) error
}

// Message is the email job placed on the outbox queue.
type Message struct {
	Subject string `json:"subject"`
	To      string `json:"to"`
	Name    string `json:"name"`
	Body    string `json:"body"`
}

// OutboxMailer publishes email jobs to the RabbitMQ email outbox, where a
// delivery worker picks them up asynchronously.
type OutboxMailer struct {
	mq *rabbitmq.Client
}

// NewOutboxMailer creates an OutboxMailer over the given RabbitMQ client.
func NewOutboxMailer(mq *rabbitmq.Client) *OutboxMailer {
	return &OutboxMailer{mq: mq}
}

// Send enqueues the email job on the outbox queue.
func (m *OutboxMailer) Send(subject, to, name, body string) error {
	if m.mq == nil {
		return fmt.Errorf("RabbitMQ client is not initialized")
	}

	payload, err := json.Marshal(Message{
		Subject: subject,
		To:      to,
		Name:    name,
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email message: %w", err)
	}

	if err := m.mq.Publish(rabbitmq.EmailQueue, payload); err != nil {
		return fmt.Errorf("failed to enqueue email to %s: %w", to, err)
	}
	return nil
}
