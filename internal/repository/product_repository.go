package repository

import (
	"database/sql"

	"github.com/wekesa/crm-maintenance/internal/model"
)

// ProductRepositoryInterface defines methods used by services
type ProductRepositoryInterface interface {
	RestockBelow(threshold, increment int) ([]model.Product, error)
}

type ProductRepository struct {
	DB *sql.DB
}

// RestockBelow tops up every product whose stock is under the threshold and
// returns the updated rows with their new stock levels.
func (r *ProductRepository) RestockBelow(threshold, increment int) ([]model.Product, error) {
	query := `
        UPDATE products
        SET stock = stock + $2
        WHERE stock < $1
        RETURNING id, name, price, stock
    `
	rows, err := r.DB.Query(query, threshold, increment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updated := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		updated = append(updated, p)
	}
	return updated, rows.Err()
}

var _ ProductRepositoryInterface = (*ProductRepository)(nil)
