package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatus_Label(t *testing.T) {
	require.Equal(t, "not connected", Status{}.Label())
	require.Equal(t, StatusInactive, Status{LastTestOK: true}.Label())
	require.Equal(t, StatusActive, Status{Connected: true}.Label())
}

func TestConnectionOf(t *testing.T) {
	require.Equal(t, Connected, ConnectionOf(true))
	require.Equal(t, Disconnected, ConnectionOf(false))
}

func TestCycleReport_Duration(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := &CycleReport{StartedAt: start}
	require.Zero(t, r.Duration())

	r.FinishedAt = start.Add(1500 * time.Millisecond)
	require.Equal(t, 1500*time.Millisecond, r.Duration())
}

func TestCarHelpers(t *testing.T) {
	require.Equal(t, "passatvariant", NormalizeAutoID("Passat_Variant"))
	require.Equal(t, NormalizeAutoID("passat_variant"), NormalizeAutoID("PassatVariant"))
	require.Equal(t, "Passat Variant", CarNameFromAutoID("Passat_Variant"))
}
