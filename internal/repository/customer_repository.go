package repository

import (
	"database/sql"
	"time"

	"github.com/wekesa/crm-maintenance/internal/model"
)

// CustomerRepositoryInterface defines methods used by services
type CustomerRepositoryInterface interface {
	DeleteInactiveBefore(cutoff time.Time) (int, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

// DeleteInactiveBefore removes every customer created before the cutoff that
// has no orders on record, and returns how many rows went. A customer with at
// least one order is never touched, whatever its age. The whole thing is one
// statement, so the selection and the delete cannot straddle a partial
// failure.
func (r *CustomerRepository) DeleteInactiveBefore(cutoff time.Time) (int, error) {
	query := `
        DELETE FROM customers
        WHERE created_at < $1
          AND NOT EXISTS (
              SELECT 1 FROM orders WHERE orders.customer_id = customers.id
          )
    `
	res, err := r.DB.Exec(query, cutoff)
	if err != nil {
		return 0, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
	query := `
        SELECT id, name, email, phone, created_at
        FROM customers
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
