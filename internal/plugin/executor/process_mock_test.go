package executor

import (
	"context"
	"io"
)

// mockProcessRunner answers --plugin-info with info and hands every other
// invocation to runFunc.
type mockProcessRunner struct {
	info    string
	runFunc func(ctx context.Context, stdin io.Reader) (stdout, stderr []byte, err error)

	calls     int
	lastStdin []byte
}

func (m *mockProcessRunner) Run(ctx context.Context, _ string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	m.calls++
	if len(args) > 0 && args[0] == "--plugin-info" {
		return []byte(m.info), nil, nil
	}

	if stdin != nil {
		m.lastStdin, _ = io.ReadAll(stdin)
	}
	if m.runFunc != nil {
		return m.runFunc(ctx, nil)
	}
	return []byte("{}"), nil, nil
}

// blockingRunFunc waits for the context to end.
func blockingRunFunc(ctx context.Context, _ io.Reader) ([]byte, []byte, error) {
	<-ctx.Done()
	return nil, nil, ctx.Err()
}
