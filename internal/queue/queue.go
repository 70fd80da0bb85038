// Package queue carries notification jobs from the API server to the
// notification worker over RabbitMQ.
package queue

import "context"

// JobQueue is the interface for the notification job queue.
type JobQueue interface {
	// Enqueue adds a job to the queue.
	Enqueue(ctx context.Context, job *Job) error

	// Consume returns a channel of messages from the queue. Messages are
	// delivered asynchronously; the caller must ack or nack each one.
	// Prefetch controls how many unacknowledged messages the consumer holds.
	Consume(ctx context.Context, prefetchCount int) (<-chan *Message, <-chan error, error)

	// Close closes the queue connection.
	Close() error

	// HealthCheck verifies the queue connection is healthy.
	HealthCheck(ctx context.Context) error
}
