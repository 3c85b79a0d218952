package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	require.Same(t, slog.Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), l)
	FromContext(ctx).Info("fetching", "asset", "bus.glb")
	require.Contains(t, buf.String(), "asset=bus.glb")
}
