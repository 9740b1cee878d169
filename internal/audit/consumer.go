// internal/audit/consumer.go

package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/repositories"
	"github.com/crewdesk/workforce-service/internal/utils"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains the audit queue into the task_audits table. It opens
// its own connection so a slow consumer never backpressures publishers.
type Consumer struct {
	url       string
	auditRepo repositories.TaskAuditRepository
}

func NewConsumer(url string, auditRepo repositories.TaskAuditRepository) *Consumer {
	return &Consumer{url: url, auditRepo: auditRepo}
}

// Start blocks until ctx is cancelled or the channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return err
	}
	defer channel.Close()

	if _, err := channel.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return err
	}

	msgs, err := channel.Consume(
		QueueName,
		"task_audit_consumer",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	utils.Logger.Info("Task audit consumer started")

	for {
		select {
		case <-ctx.Done():
			utils.Logger.Info("Task audit consumer stopped")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				utils.Logger.Warn("Task audit delivery channel closed")
				return nil
			}
			c.processMessage(msg)
		}
	}
}

func (c *Consumer) processMessage(msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var event models.TaskAuditEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		utils.Logger.WithError(err).Error("Dropping unparseable audit message")
		_ = msg.Nack(false, false) // no requeue, the payload will never parse
		return
	}

	row := &models.TaskAudit{
		TaskID:     event.TaskID,
		ProjectID:  event.ProjectID,
		Action:     event.Action,
		Payload:    msg.Body,
		OccurredAt: event.OccurredAt,
	}
	if err := c.auditRepo.Create(ctx, row); err != nil {
		utils.Logger.WithError(err).Error("Failed to persist audit event, requeueing")
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
}
