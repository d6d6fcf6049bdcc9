package logs

import (
	"context"
	"log/slog"
)

type fileKey struct{}

// FileKey is the context key holding the path of the source being compiled.
var FileKey fileKey

// WithFile returns a context whose log records carry path.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, FileKey, path)
}

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v := ctx.Value(FileKey); v != nil {
		record.Add("tsmini.file", v.(string))
	}
	return h.Handler.Handle(ctx, record)
}
