// internal/logfile/logfile.go
package logfile

import "os"

// File appends lines to a flat audit log at a fixed path, creating the file
// on first write and never truncating. One short append per line keeps
// writes whole at line granularity on POSIX filesystems.
type File struct {
	Path string
}

func (f *File) Append(line string) error {
	fh, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := fh.WriteString(line + "\n"); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
