package opcua

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"bpa-inspection/internal/domain/entity"
)

// closedEndpoint возвращает адрес порта, на котором никто не слушает.
func closedEndpoint(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return "opc.tcp://" + addr
}

func TestSource_ProbeUnreachable(t *testing.T) {
	src := NewSource(Config{Endpoint: closedEndpoint(t), Node: SimulationNodePath}, zerolog.Nop())
	require.Error(t, src.Probe(context.Background(), time.Second))
}

func TestSource_OpenUnreachable(t *testing.T) {
	src := NewSource(Config{Endpoint: closedEndpoint(t), Node: SimulationNodePath, DialTimeout: time.Second}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := src.Open(ctx, func(string) {})
	require.Error(t, err)
	require.True(t, errors.Is(err, entity.ErrConnection))
	require.NoError(t, src.Close(ctx))
}

func TestSource_CloseWithoutOpen(t *testing.T) {
	src := NewSource(Config{Endpoint: "opc.tcp://localhost:4840"}, zerolog.Nop())
	require.Equal(t, "opc.tcp://localhost:4840", src.Endpoint())
	require.NoError(t, src.Close(context.Background()))
	require.NoError(t, src.Close(context.Background()))
}
