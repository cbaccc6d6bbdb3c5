// internal/service/reminders.go
package service

import (
	"fmt"
	"log"
	"time"

	"github.com/wekesa/crm-maintenance/internal/repository"
)

// DefaultReminderWindowDays is how far back the reminders job looks for
// recent orders.
const DefaultReminderWindowDays = 7

// Reminders logs a reminder line for every order placed inside the window,
// addressed to the customer who placed it.
type Reminders struct {
	OrderRepo  repository.OrderRepositoryInterface
	Log        Appender
	WindowDays int              // 0 means DefaultReminderWindowDays
	Now        func() time.Time // nil means time.Now
}

// Run returns how many reminder lines were written.
func (j *Reminders) Run() (int, error) {
	cutoff := j.now().AddDate(0, 0, -j.windowDays())

	orders, err := j.OrderRepo.ListPlacedSince(cutoff)
	if err != nil {
		return 0, fmt.Errorf("list recent orders: %w", err)
	}

	for i, o := range orders {
		line := fmt.Sprintf("%s - Reminder for Order %d to %s",
			j.now().Format(timestampLayout), o.OrderID, o.CustomerEmail)
		if err := j.Log.Append(line); err != nil {
			return i, fmt.Errorf("append reminders log: %w", err)
		}
	}

	log.Printf("Order reminders processed: %d\n", len(orders))
	return len(orders), nil
}

func (j *Reminders) windowDays() int {
	if j.WindowDays <= 0 {
		return DefaultReminderWindowDays
	}
	return j.WindowDays
}

func (j *Reminders) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}
