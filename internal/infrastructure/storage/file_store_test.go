package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-backoffice-api/internal/domain"
	"github.com/jhoicas/pos-backoffice-api/internal/infrastructure/storage"
)

func TestFileStore_GuardarLeerEliminar(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save(ctx, "TRX-1_INV-0001-03-2025.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	data, err := s.Open(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	_, err = s.Save(ctx, ref, []byte("otro"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, s.Remove(ctx, ref))
	_, err = s.Open(ctx, ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, s.Remove(ctx, ref))
}

func TestFileStore_RechazaRutasFuera(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../x.pdf", "/etc/passwd", "a/b.pdf", ""} {
		_, err := s.Save(ctx, name, []byte("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}
