// internal/model/order.go
package model

import "time"

type Order struct {
	ID          int       `db:"id" json:"id"`
	CustomerID  int       `db:"customer_id" json:"customer_id"`
	OrderDate   time.Time `db:"order_date" json:"order_date"`
	TotalAmount float64   `db:"total_amount" json:"total_amount"`
}

// OrderReminder pairs an order with the email of the customer who placed it,
// for the reminders job.
type OrderReminder struct {
	OrderID       int    `db:"order_id" json:"order_id"`
	CustomerEmail string `db:"customer_email" json:"customer_email"`
}
