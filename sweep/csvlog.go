package sweep

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Row is one timed operation as written to the result log.
type Row struct {
	Operation  string
	Degree     int
	VectorSize int // 0 in the scalar variant
	Millis     float64
}

// Fields returns the CSV fields of r in column order.
func (r Row) Fields(variant Variant) []string {
	fields := []string{r.Operation, strconv.Itoa(r.Degree)}
	if variant == Vector {
		fields = append(fields, strconv.Itoa(r.VectorSize))
	}
	return append(fields, FormatMillis(r.Millis))
}

// FormatMillis prints a duration with six significant digits.
func FormatMillis(ms float64) string {
	return strconv.FormatFloat(ms, 'g', 6, 64)
}

// Logger appends result rows to a CSV file. Every row is flushed as soon as
// it is written so an aborted sweep keeps the rows produced so far.
type Logger struct {
	file    *os.File
	w       *csv.Writer
	variant Variant
	path    string
}

// OpenLog opens path for appending, creating it if needed. The header is
// written only when the file is empty, so reruns extend the same table.
func OpenLog(path string, variant Variant, header []string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIO, path, err)
	}

	l := &Logger{file: f, w: csv.NewWriter(f), variant: variant, path: path}
	if info.Size() == 0 {
		if err := l.writeFields(header); err != nil {
			f.Close()
			return nil, err
		}
	}

	return l, nil
}

// Path returns the file the logger appends to.
func (l *Logger) Path() string {
	return l.path
}

// Write appends r and flushes it to the file.
func (l *Logger) Write(r Row) error {
	return l.writeFields(r.Fields(l.variant))
}

func (l *Logger) writeFields(fields []string) error {
	if err := l.w.Write(fields); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, l.path, err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("%w: flushing %s: %v", ErrIO, l.path, err)
	}
	return nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	l.w.Flush()
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrIO, l.path, err)
	}
	return nil
}
