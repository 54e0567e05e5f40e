package logging

import (
	"io"
	"log"
	"os"
)

// New returns a logger with a consistent prefix to simplify traceability.
func New(component string) *log.Logger {
	return NewWithWriter(os.Stdout, component)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, component string) *log.Logger {
	prefix := component
	if prefix != "" {
		prefix = "[" + component + "] "
	}

	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}
