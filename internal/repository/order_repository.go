package repository

import (
	"database/sql"
	"time"

	"github.com/wekesa/crm-maintenance/internal/model"
)

// OrderRepositoryInterface defines methods used by services
type OrderRepositoryInterface interface {
	ListPlacedSince(cutoff time.Time) ([]model.OrderReminder, error)
}

type OrderRepository struct {
	DB *sql.DB
}

// ListPlacedSince returns every order placed at or after the cutoff together
// with the email of the customer who placed it, oldest first.
func (r *OrderRepository) ListPlacedSince(cutoff time.Time) ([]model.OrderReminder, error) {
	query := `
        SELECT o.id, c.email
        FROM orders o
        JOIN customers c ON c.id = o.customer_id
        WHERE o.order_date >= $1
        ORDER BY o.id
    `
	rows, err := r.DB.Query(query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []model.OrderReminder{}
	for rows.Next() {
		var rem model.OrderReminder
		if err := rows.Scan(&rem.OrderID, &rem.CustomerEmail); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)
