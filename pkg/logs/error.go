package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapFile annotates err with the file recorded in ctx, if any.
func WrapFile(ctx context.Context, err error) error {
	v := ctx.Value(FileKey)
	if v == nil || err == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("file: %s", v.(string)))
}
