package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExec(t *testing.T) {
	t.Run("Should show help without arguments", func(t *testing.T) {
		var got []string
		fn := func(_ context.Context, argv []string, _, _ io.Writer) int {
			got = argv
			return 0
		}
		assert.Equal(t, 0, Exec(context.Background(), fn, nil, io.Discard, io.Discard))
		assert.Equal(t, []string{"-h"}, got)
	})

	t.Run("Should report interrupted successful runs", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ok := func(context.Context, []string, io.Writer, io.Writer) int { return 0 }
		failed := func(context.Context, []string, io.Writer, io.Writer) int { return 1 }
		assert.Equal(t, ExitInterrupted, Exec(ctx, ok, []string{"a"}, io.Discard, io.Discard))
		assert.Equal(t, 1, Exec(ctx, failed, []string{"a"}, io.Discard, io.Discard))
	})
}
