package service

// Appender is the flat-file audit log a job writes to. logfile.File is the
// production implementation.
type Appender interface {
	Append(line string) error
}
