package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/dqaudit/internal/core"
)

// writeFile creates path and streams render into it. Any failure, including
// the final flush and close, is reported as an InternalError for op.
func writeFile(path, op string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return core.NewInternalError(op, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = core.NewInternalError(op, fmt.Errorf("close %s: %w", path, cerr))
		}
	}()

	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		return core.NewInternalError(op, err)
	}
	if err := bw.Flush(); err != nil {
		return core.NewInternalError(op, err)
	}
	return nil
}
