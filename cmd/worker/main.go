// cmd/worker/main.go
package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/wekesa/crm-maintenance/internal/config"
	"github.com/wekesa/crm-maintenance/internal/controller"
	"github.com/wekesa/crm-maintenance/internal/db"
	appErrors "github.com/wekesa/crm-maintenance/internal/errors"
	"github.com/wekesa/crm-maintenance/internal/logfile"
	"github.com/wekesa/crm-maintenance/internal/queue"
	"github.com/wekesa/crm-maintenance/internal/repository"
	"github.com/wekesa/crm-maintenance/internal/service"
	"github.com/wekesa/crm-maintenance/internal/tasks"
)

const maxTaskRetries = 3

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	// Connect to DB
	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	defer conn.Close()

	registry := buildRegistry(conn, cfg)

	// Ops endpoints
	statusController := &controller.StatusController{Registry: registry}

	r := chi.NewRouter()
	r.Get("/healthz", statusController.Healthz)
	r.Get("/tasks", statusController.ListTasks)
	r.Get("/tasks/{name}", statusController.GetTask)

	go func() {
		log.Println("🚀 Ops server running on", cfg.OpsAddr)
		log.Fatal(http.ListenAndServe(cfg.OpsAddr, r))
	}()

	// Connect to RabbitMQ
	mq, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer mq.Close()

	ch, err := mq.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.TaskQueue, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var env queue.TaskEnvelope
			if err := json.Unmarshal(d.Body, &env); err != nil {
				log.Println("Invalid task envelope:", err)
				d.Ack(false)
				continue
			}

			affected, err := registry.Run(env.Task)
			if err != nil {
				log.Println("⚠️ Task failed:", env.Task, err)

				var unknown *appErrors.ErrUnknownTask
				if errors.As(err, &unknown) {
					d.Ack(false) // retrying cannot help
					continue
				}

				if retries := headerRetryCount(d.Headers); retries < maxTaskRetries {
					if err := requeue(ch, q.Name, d.Body, retries+1); err != nil {
						log.Println("⚠️ Failed to requeue task:", env.Task, err)
					}
				} else {
					log.Printf("Task %s permanently failed after %d attempts\n", env.Task, maxTaskRetries)
				}
				d.Ack(false)
				continue
			}

			log.Printf("✅ Task %s complete, %d rows affected\n", env.Task, affected)
			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for tasks...")
	<-forever
}

func buildRegistry(conn *sql.DB, cfg config.Config) *tasks.Registry {
	customerRepo := &repository.CustomerRepository{DB: conn}
	orderRepo := &repository.OrderRepository{DB: conn}
	productRepo := &repository.ProductRepository{DB: conn}

	sweeper := &service.Sweeper{
		CustomerRepo:  customerRepo,
		Log:           &logfile.File{Path: cfg.CleanupLog},
		RetentionDays: cfg.RetentionDays,
	}
	reminders := &service.Reminders{
		OrderRepo:  orderRepo,
		Log:        &logfile.File{Path: cfg.RemindersLog},
		WindowDays: cfg.ReminderWindowDays,
	}
	restock := &service.Restock{
		ProductRepo: productRepo,
		Log:         &logfile.File{Path: cfg.LowStockLog},
		Threshold:   cfg.LowStockThreshold,
		Increment:   cfg.RestockIncrement,
	}
	heartbeat := &service.Heartbeat{
		Store: conn,
		Log:   &logfile.File{Path: cfg.HeartbeatLog},
	}

	registry := tasks.NewRegistry()
	registry.Register(tasks.TaskCustomersCleanup, sweeper.Run)
	registry.Register(tasks.TaskOrderReminders, reminders.Run)
	registry.Register(tasks.TaskLowStockRestock, restock.Run)
	registry.Register(tasks.TaskHeartbeat, func() (int, error) { return 0, heartbeat.Run() })
	return registry
}

// headerRetryCount reads x-retry-count from the delivery headers. The amqp
// table gives numbers back in whatever width the broker chose.
func headerRetryCount(headers amqp.Table) int {
	v, ok := headers["x-retry-count"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	}
	return 0
}

// requeue republishes the delivery with an incremented retry header.
func requeue(ch *amqp.Channel, queueName string, body []byte, retries int) error {
	return ch.Publish(
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Headers:      amqp.Table{"x-retry-count": int32(retries)},
			Body:         body,
		},
	)
}
