// cmd/beat/main.go
package main

import (
	"database/sql"
	"log"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/wekesa/crm-maintenance/internal/config"
	"github.com/wekesa/crm-maintenance/internal/db"
	"github.com/wekesa/crm-maintenance/internal/logfile"
	"github.com/wekesa/crm-maintenance/internal/queue"
	"github.com/wekesa/crm-maintenance/internal/repository"
	"github.com/wekesa/crm-maintenance/internal/service"
	"github.com/wekesa/crm-maintenance/internal/tasks"
)

// The beat owns the schedules and nothing else: on every tick it publishes a
// task envelope and lets the consumer do the work. With AMQP_URL unset it
// falls back to an in-process queue so a single binary can run everything.
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	var q queue.Queue
	if cfg.AMQPURL == "" {
		conn, err := db.Open(cfg)
		if err != nil {
			log.Fatal("failed to connect to DB:", err)
		}
		defer conn.Close()

		inmem := queue.NewInMemoryQueue()
		queue.StartTaskSubscriber(inmem, buildRegistry(conn, cfg))
		q = inmem
		log.Println("No AMQP_URL set, running tasks in-process")
	} else {
		pub, err := queue.NewAMQPPublisher(cfg.AMQPURL, cfg.TaskQueue)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer pub.Close()
		q = pub
	}

	schedules := map[string]string{
		tasks.TaskCustomersCleanup: cfg.SweepSchedule,
		tasks.TaskOrderReminders:   cfg.RemindersSchedule,
		tasks.TaskLowStockRestock:  cfg.LowStockSchedule,
		tasks.TaskHeartbeat:        cfg.HeartbeatSchedule,
	}

	c := cron.New()
	for name, spec := range schedules {
		if _, err := cron.ParseStandard(spec); err != nil {
			log.Fatalf("invalid schedule %q for task %s: %v", spec, name, err)
		}
		task := name
		if _, err := c.AddFunc(spec, func() {
			env := queue.NewTaskEnvelope(task)
			if err := q.Publish(env); err != nil {
				log.Println("⚠️ failed to enqueue task", task, ":", err)
				return
			}
			log.Printf("📩 Enqueued task %s (%s)\n", task, env.TaskID)
		}); err != nil {
			log.Fatalf("failed to schedule task %s: %v", name, err)
		}
	}

	c.Start()
	log.Printf("🚀 Beat running, %d schedules registered\n", len(schedules))
	select {}
}

func buildRegistry(conn *sql.DB, cfg config.Config) *tasks.Registry {
	customerRepo := &repository.CustomerRepository{DB: conn}
	orderRepo := &repository.OrderRepository{DB: conn}
	productRepo := &repository.ProductRepository{DB: conn}

	registry := tasks.NewRegistry()
	registry.Register(tasks.TaskCustomersCleanup, (&service.Sweeper{
		CustomerRepo:  customerRepo,
		Log:           &logfile.File{Path: cfg.CleanupLog},
		RetentionDays: cfg.RetentionDays,
	}).Run)
	registry.Register(tasks.TaskOrderReminders, (&service.Reminders{
		OrderRepo:  orderRepo,
		Log:        &logfile.File{Path: cfg.RemindersLog},
		WindowDays: cfg.ReminderWindowDays,
	}).Run)
	registry.Register(tasks.TaskLowStockRestock, (&service.Restock{
		ProductRepo: productRepo,
		Log:         &logfile.File{Path: cfg.LowStockLog},
		Threshold:   cfg.LowStockThreshold,
		Increment:   cfg.RestockIncrement,
	}).Run)
	heartbeat := &service.Heartbeat{
		Store: conn,
		Log:   &logfile.File{Path: cfg.HeartbeatLog},
	}
	registry.Register(tasks.TaskHeartbeat, func() (int, error) { return 0, heartbeat.Run() })
	return registry
}
