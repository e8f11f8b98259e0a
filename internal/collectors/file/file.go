package file

import (
	"context"
	"fmt"
	"io"
	"os"

	"v2parser/internal/collectors"
)

// FileCollector reads links from a local file, or stdin for "" and "-".
type FileCollector struct {
	stdin io.Reader
}

func (c *FileCollector) Collect(_ context.Context, target string, _ collectors.Options) ([]string, error) {
	var data []byte
	var err error
	if target == "" || target == "-" {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(target)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return collectors.ExtractFromBody(data), nil
}

func init() {
	collectors.Register("file", func() collectors.Collector {
		return &FileCollector{stdin: os.Stdin}
	})
}
