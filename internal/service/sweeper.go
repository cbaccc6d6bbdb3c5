// internal/service/sweeper.go
package service

import (
	"fmt"
	"time"

	"github.com/wekesa/crm-maintenance/internal/repository"
)

// timestampLayout is the wall-clock format shared by the flat-file audit
// logs: YYYY-MM-DD HH:MM:SS in local time.
const timestampLayout = "2006-01-02 15:04:05"

// DefaultRetentionDays is how long a customer record is kept before it
// becomes eligible for cleanup.
const DefaultRetentionDays = 365

// Sweeper deletes customers that have aged past the retention window without
// ever placing an order, then appends exactly one audit line per run.
//
// The audit line is only written after the delete has committed, so a store
// failure leaves the cleanup log untouched. Re-running is always safe: swept
// customers no longer match the next cutoff.
type Sweeper struct {
	CustomerRepo  repository.CustomerRepositoryInterface
	Log           Appender
	RetentionDays int              // 0 means DefaultRetentionDays
	Now           func() time.Time // nil means time.Now
}

// Run performs one sweep and returns the number of customers deleted.
func (s *Sweeper) Run() (int, error) {
	cutoff := s.now().AddDate(0, 0, -s.retentionDays())

	deleted, err := s.CustomerRepo.DeleteInactiveBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete inactive customers: %w", err)
	}

	line := fmt.Sprintf("%s - Deleted %d inactive customers", s.now().Format(timestampLayout), deleted)
	if err := s.Log.Append(line); err != nil {
		// the delete is already committed; only the audit trail is missing
		return deleted, fmt.Errorf("append cleanup log: %w", err)
	}
	return deleted, nil
}

func (s *Sweeper) retentionDays() int {
	if s.RetentionDays <= 0 {
		return DefaultRetentionDays
	}
	return s.RetentionDays
}

func (s *Sweeper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
