package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bpa-inspection/internal/domain/entity"
)

const carsJSON = `{
    "Golf": [{"RFID": "ANT001-CAR42"}, {"AutoID": "CAR42"}],
    "Passat Variant": [{"RFID": null}, {"AutoID": "Passat_Variant"}]
}`

func TestLoadCarRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cars_config.json")
	require.NoError(t, os.WriteFile(path, []byte(carsJSON), 0o644))

	repo, err := LoadCarRepository(path)
	require.NoError(t, err)
	ctx := context.Background()

	autoID, ok := repo.AutoID(ctx, "ANT001-CAR42")
	require.True(t, ok)
	require.Equal(t, "CAR42", autoID)

	_, ok = repo.AutoID(ctx, "")
	require.False(t, ok)

	name, ok := repo.CarName(ctx, "Passat_Variant")
	require.True(t, ok)
	require.Equal(t, "Passat Variant", name)

	require.Equal(t, []entity.Car{
		{Name: "Golf", RFID: "ANT001-CAR42", AutoID: "CAR42"},
		{Name: "Passat Variant", AutoID: "Passat_Variant"},
	}, repo.List(ctx))
}

func TestLoadCarRepository_MissingFile(t *testing.T) {
	_, err := LoadCarRepository(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestMemoryCarRepository_Merge(t *testing.T) {
	repo := NewMemoryCarRepository(entity.Car{Name: "Passat Variant", AutoID: "Passat_Variant"})
	ctx := context.Background()

	added := repo.Merge(ctx, []string{"passatvariant", "Tiguan_R", "", "Tiguan_R"})
	require.Equal(t, 1, added)

	name, ok := repo.CarName(ctx, "Tiguan_R")
	require.True(t, ok)
	require.Equal(t, "Tiguan R", name)
}

func TestMemoryCarRepository_SetRFID(t *testing.T) {
	repo := NewMemoryCarRepository(entity.Car{Name: "Golf", AutoID: "CAR42"})
	ctx := context.Background()

	require.NoError(t, repo.SetRFID(ctx, "CAR42", "ANT007"))
	autoID, ok := repo.AutoID(ctx, "ANT007")
	require.True(t, ok)
	require.Equal(t, "CAR42", autoID)

	require.Error(t, repo.SetRFID(ctx, "UNKNOWN", "ANT008"))
}
