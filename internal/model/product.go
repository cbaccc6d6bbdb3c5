// internal/model/product.go
package model

type Product struct {
	ID    int     `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
	Stock int     `db:"stock" json:"stock"`
}
