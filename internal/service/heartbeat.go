// internal/service/heartbeat.go
package service

import (
	"fmt"
	"time"
)

// heartbeatLayout keeps the historical DD/MM/YYYY-HH:MM:SS format of the
// liveness line.
const heartbeatLayout = "02/01/2006-15:04:05"

// Pinger is the store liveness probe. *sql.DB satisfies it.
type Pinger interface {
	Ping() error
}

// Heartbeat appends a liveness line on every run, then pings the store and
// appends the result. A dead store gets a failure line rather than failing
// the heartbeat; the liveness line must land either way.
type Heartbeat struct {
	Store Pinger
	Log   Appender
	Now   func() time.Time // nil means time.Now
}

func (j *Heartbeat) Run() error {
	ts := j.now().Format(heartbeatLayout)

	if err := j.Log.Append(ts + " CRM is alive"); err != nil {
		return fmt.Errorf("append heartbeat log: %w", err)
	}

	if err := j.Store.Ping(); err != nil {
		return j.Log.Append(fmt.Sprintf("%s store check failed: %v", ts, err))
	}
	return j.Log.Append(ts + " store check: OK")
}

func (j *Heartbeat) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}
