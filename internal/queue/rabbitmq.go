package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// DefaultQueueName is the notification queue name.
	DefaultQueueName = "task_notifications"
	// DefaultDLQName is the dead letter queue name.
	DefaultDLQName = "task_notifications_dlq"
	// DefaultExchangeName is the exchange name.
	DefaultExchangeName = "task_events"

	jobsRoutingKey = "jobs"
	dlqRoutingKey  = "dlq"
)

// RabbitMQQueue implements JobQueue using RabbitMQ.
type RabbitMQQueue struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	queueName    string
	dlqName      string
	exchangeName string
}

// NewRabbitMQQueue connects to RabbitMQ and declares the exchange, queue and
// dead letter queue.
func NewRabbitMQQueue(amqpURL string) (*RabbitMQQueue, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q := &RabbitMQQueue{
		conn:         conn,
		channel:      ch,
		queueName:    DefaultQueueName,
		dlqName:      DefaultDLQName,
		exchangeName: DefaultExchangeName,
	}

	if err := q.setup(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("failed to setup queues: %w", err)
	}

	return q, nil
}

func (q *RabbitMQQueue) setup() error {
	err := q.channel.ExchangeDeclare(
		q.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err = q.channel.QueueDeclare(q.dlqName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ: %w", err)
	}
	if err = q.channel.QueueBind(q.dlqName, dlqRoutingKey, q.exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind DLQ: %w", err)
	}

	// Failed notifications dead-letter into the DLQ instead of vanishing.
	queueArgs := amqp.Table{
		"x-dead-letter-exchange":    q.exchangeName,
		"x-dead-letter-routing-key": dlqRoutingKey,
	}
	if _, err = q.channel.QueueDeclare(q.queueName, true, false, false, false, queueArgs); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err = q.channel.QueueBind(q.queueName, jobsRoutingKey, q.exchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue to exchange: %w", err)
	}

	return nil
}

// Enqueue publishes a job as a persistent message.
func (q *RabbitMQQueue) Enqueue(ctx context.Context, job *Job) error {
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.channel.PublishWithContext(
		ctx,
		q.exchangeName,
		jobsRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobJSON,
			DeliveryMode: amqp.Persistent,
			MessageId:    job.ID.String(),
			Timestamp:    job.CreatedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	return nil
}

// Consume delivers messages asynchronously on a dedicated channel.
func (q *RabbitMQQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error) {
	consumeCh, err := q.conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create consumer channel: %w", err)
	}

	if err := consumeCh.Qos(prefetchCount, 0, false); err != nil {
		if closeErr := consumeCh.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := consumeCh.Consume(
		q.queueName,
		"",    // consumer tag (auto-generated)
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		if closeErr := consumeCh.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	msgChan := make(chan *Message, prefetchCount)
	errChan := make(chan error, 1)

	go func() {
		defer close(msgChan)
		defer close(errChan)
		defer func() {
			if err := consumeCh.Close(); err != nil {
				_ = err
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					errChan <- fmt.Errorf("delivery channel closed")
					return
				}

				var job Job
				if err := json.Unmarshal(delivery.Body, &job); err != nil {
					// Malformed message, send to DLQ.
					_ = delivery.Nack(false, false)
					errChan <- fmt.Errorf("failed to unmarshal job: %w", err)
					continue
				}

				msg := &Message{
					Job:         &job,
					DeliveryTag: delivery.DeliveryTag,
					Channel:     consumeCh,
				}

				select {
				case <-ctx.Done():
					_ = delivery.Nack(false, true)
					return
				case msgChan <- msg:
				}
			}
		}
	}()

	return msgChan, errChan, nil
}

// Close closes the channel and connection.
func (q *RabbitMQQueue) Close() error {
	var err error
	if q.channel != nil {
		err = q.channel.Close()
	}
	if q.conn != nil {
		if connErr := q.conn.Close(); connErr != nil && err == nil {
			err = connErr
		}
	}
	return err
}

// HealthCheck verifies the connection is open.
func (q *RabbitMQQueue) HealthCheck(ctx context.Context) error {
	if q.conn == nil || q.conn.IsClosed() {
		return fmt.Errorf("rabbitmq connection is closed")
	}
	return nil
}

var _ JobQueue = (*RabbitMQQueue)(nil)
