package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-billing/internal/domain/entity"
	"github.com/jhoicas/energy-billing/internal/domain/repository"
	"github.com/jhoicas/energy-billing/internal/infrastructure/memory"
)

func TestRunImport_ConfirmaSiNoHayError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.RunImport(ctx, func(meters repository.MeterRepository, _ repository.ContractRepository, _ repository.ReadingRepository) error {
		return meters.Create(ctx, &entity.Meter{ID: "MTR001", Address: "Calle Mayor 1", City: "Madrid"})
	})
	require.NoError(t, err)

	ok, err := store.Meters().Exists(ctx, "MTR001")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunImport_ErrorDeshaceLoInsertado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("fallo a mitad de fichero")

	err := store.RunImport(ctx, func(meters repository.MeterRepository, _ repository.ContractRepository, _ repository.ReadingRepository) error {
		require.NoError(t, meters.Create(ctx, &entity.Meter{ID: "MTR001", Address: "Calle Mayor 1", City: "Madrid"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := store.Meters().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
