package archnode

import (
	"io"
	"log"
)

var logger *log.Logger

// SetLogger overrides the log writer for this package.
func SetLogger(w io.Writer) {
	flags := log.Flags()
	prefix := "[archnode] "
	logger = log.New(w, prefix, flags)
}

func init() {
	SetLogger(io.Discard)
}
