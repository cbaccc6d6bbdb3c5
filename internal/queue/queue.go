package queue

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wekesa/crm-maintenance/internal/tasks"
)

// Queue decouples the beat from task execution.
type Queue interface {
	Publish(env TaskEnvelope) error
}

// TaskEnvelope is the message the beat publishes and the worker consumes.
type TaskEnvelope struct {
	TaskID     string    `json:"task_id"`
	Task       string    `json:"task"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewTaskEnvelope stamps a task name with a fresh id and enqueue time.
func NewTaskEnvelope(task string) TaskEnvelope {
	return TaskEnvelope{
		TaskID:     uuid.NewString(),
		Task:       task,
		EnqueuedAt: time.Now(),
	}
}

// InMemoryQueue runs task envelopes through in-process handlers with retry.
// It backs the brokerless beat mode and tests; deployments with RabbitMQ use
// AMQPPublisher and cmd/worker instead.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers []func(env TaskEnvelope) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{}
}

const inMemoryMaxRetries = 3

var errNoSubscribers = errors.New("no subscribers for task queue")

// Publish hands the envelope to every subscriber
func (q *InMemoryQueue) Publish(env TaskEnvelope) error {
	q.mu.Lock()
	handlers := q.handlers
	q.mu.Unlock()

	if len(handlers) == 0 {
		return errNoSubscribers
	}

	for _, handler := range handlers {
		go q.processJob(handler, env)
	}
	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(env TaskEnvelope) error, env TaskEnvelope) {
	for attempt := 0; attempt <= inMemoryMaxRetries; attempt++ {
		err := handler(env)
		if err == nil {
			return // ACK
		}

		log.Printf("Task %s failed (attempt %d/%d): %v\n", env.Task, attempt+1, inMemoryMaxRetries, err)

		if attempt == inMemoryMaxRetries {
			log.Printf("Task %s permanently failed after %d attempts\n", env.Task, inMemoryMaxRetries)
			return // No requeue
		}

		// Backoff before retry
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
}

// Subscribe adds a handler for published envelopes
func (q *InMemoryQueue) Subscribe(handler func(env TaskEnvelope) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// StartTaskSubscriber runs every published envelope through the registry.
func StartTaskSubscriber(q *InMemoryQueue, registry *tasks.Registry) {
	q.Subscribe(func(env TaskEnvelope) error {
		log.Println("📩 Processing queued task:", env.Task)

		affected, err := registry.Run(env.Task)
		if err != nil {
			log.Println("⚠️ Task failed:", env.Task, err)
			return err // triggers retry in queue
		}

		log.Printf("✅ Task %s complete, %d rows affected\n", env.Task, affected)
		return nil
	})
}

var _ Queue = (*InMemoryQueue)(nil)
