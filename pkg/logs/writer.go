package logs

import (
	"io"
	"os"
)

// Writer receives text log records. It defaults to stderr, the stream emitted
// code never goes to; tests fork in a buffer.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
