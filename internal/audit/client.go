// internal/audit/client.go

package audit

import (
	"context"
	"encoding/json"

	"github.com/crewdesk/workforce-service/internal/models"
	"github.com/crewdesk/workforce-service/internal/utils"
	amqp "github.com/rabbitmq/amqp091-go"
)

const QueueName = "task_audit_events"

// Client wraps one AMQP connection/channel pair used for publishing
// task audit events. Publishing is fire-and-forget from the write path:
// an audit failure is logged, never surfaced to the caller.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	queue, err := channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Client{conn: conn, channel: channel, queue: queue}, nil
}

func (c *Client) Publish(ctx context.Context, event *models.TaskAuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = c.channel.PublishWithContext(
		ctx,
		"",           // default exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return err
	}

	utils.Logger.Debugf("Published %s audit event for task %s", event.Action, event.TaskID)
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
