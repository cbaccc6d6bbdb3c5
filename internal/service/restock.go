// internal/service/restock.go
package service

import (
	"fmt"
	"time"

	"github.com/wekesa/crm-maintenance/internal/repository"
)

const (
	// DefaultLowStockThreshold marks a product as low on stock.
	DefaultLowStockThreshold = 10
	// DefaultRestockIncrement is added to each low-stock product.
	DefaultRestockIncrement = 10
)

// Restock tops up every product running low on stock and appends a block to
// the low-stock log: a timestamp header, a summary line, then one line per
// updated product with its new stock level.
type Restock struct {
	ProductRepo repository.ProductRepositoryInterface
	Log         Appender
	Threshold   int              // 0 means DefaultLowStockThreshold
	Increment   int              // 0 means DefaultRestockIncrement
	Now         func() time.Time // nil means time.Now
}

// Run returns how many products were restocked. The log block is written
// even when nothing was low, so the log shows the job ran.
func (j *Restock) Run() (int, error) {
	updated, err := j.ProductRepo.RestockBelow(j.threshold(), j.increment())
	if err != nil {
		return 0, fmt.Errorf("restock products: %w", err)
	}

	if err := j.Log.Append(fmt.Sprintf("=== %s ===", j.now().Format(timestampLayout))); err != nil {
		return len(updated), fmt.Errorf("append low stock log: %w", err)
	}
	if err := j.Log.Append(fmt.Sprintf("%d products updated.", len(updated))); err != nil {
		return len(updated), fmt.Errorf("append low stock log: %w", err)
	}
	for _, p := range updated {
		if err := j.Log.Append(fmt.Sprintf("- %s: %d", p.Name, p.Stock)); err != nil {
			return len(updated), fmt.Errorf("append low stock log: %w", err)
		}
	}

	return len(updated), nil
}

func (j *Restock) threshold() int {
	if j.Threshold <= 0 {
		return DefaultLowStockThreshold
	}
	return j.Threshold
}

func (j *Restock) increment() int {
	if j.Increment <= 0 {
		return DefaultRestockIncrement
	}
	return j.Increment
}

func (j *Restock) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}
