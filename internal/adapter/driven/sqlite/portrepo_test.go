package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/portpanel/internal/domain/model"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
)

func makePort(name string, number int, protocol model.Protocol) model.Port {
	return model.Port{Name: name, Number: number, Protocol: protocol}
}

func TestPortRepo_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, makePort("HTTP-alt", 8080, model.ProtocolTCP))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "HTTP-alt", created.Name)
	assert.Equal(t, 8080, created.Number)
	assert.Equal(t, model.ProtocolTCP, created.Protocol)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created, all[0])
}

func TestPortRepo_Create_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makePort("HTTP", 80, model.ProtocolTCP))
	require.NoError(t, err)

	_, err = repo.Create(ctx, makePort("Other", 80, model.ProtocolUDP))
	require.ErrorIs(t, err, driven.ErrPortAlreadyExists)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "HTTP", all[0].Name)
}

func TestPortRepo_List_InsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	for _, p := range []model.Port{
		makePort("SSH", 22, model.ProtocolTCP),
		makePort("DNS", 53, model.ProtocolUDP),
		makePort("FTP", 21, model.ProtocolTCP),
	} {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 22, all[0].Number)
	assert.Equal(t, 53, all[1].Number)
	assert.Equal(t, 21, all[2].Number)
}

func TestPortRepo_List_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPortRepo_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, makePort("DNS", 53, model.ProtocolUDP))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, 53, "Domain", model.ProtocolTCP)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Domain", updated.Name)
	assert.Equal(t, 53, updated.Number, "number must not change")
	assert.Equal(t, model.ProtocolTCP, updated.Protocol)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, updated, all[0])
}

func TestPortRepo_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)

	_, err := repo.Update(context.Background(), 9999, "nope", model.ProtocolTCP)
	assert.ErrorIs(t, err, driven.ErrPortNotFound)
}

func TestPortRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makePort("SSH", 22, model.ProtocolTCP))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 22))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPortRepo_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makePort("SSH", 22, model.ProtocolTCP))
	require.NoError(t, err)

	err = repo.Delete(ctx, 23)
	require.ErrorIs(t, err, driven.ErrPortNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "failed delete must not remove anything")
}

func TestPortRepo_SeedIfEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	seeded, err := repo.SeedIfEmpty(ctx, model.DefaultPorts())
	require.NoError(t, err)
	assert.True(t, seeded)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 8)
	assert.Equal(t, "HTTP", all[0].Name)
	assert.Equal(t, 80, all[0].Number)
	assert.Equal(t, "IMAP", all[7].Name)

	_, err = repo.Create(ctx, makePort("HTTP again", 80, model.ProtocolTCP))
	assert.ErrorIs(t, err, driven.ErrPortAlreadyExists)
}

func TestPortRepo_SeedIfEmpty_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	_, err := repo.SeedIfEmpty(ctx, model.DefaultPorts())
	require.NoError(t, err)

	seeded, err := repo.SeedIfEmpty(ctx, model.DefaultPorts())
	require.NoError(t, err)
	assert.False(t, seeded)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestPortRepo_SeedIfEmpty_SkipsNonEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPortRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makePort("Custom", 9000, model.ProtocolTCP))
	require.NoError(t, err)

	seeded, err := repo.SeedIfEmpty(ctx, model.DefaultPorts())
	require.NoError(t, err)
	assert.False(t, seeded)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPortRepo_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ports.db")
	ctx := context.Background()

	db, err := NewDB(ctx, path)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db.Writer))

	_, err = NewPortRepo(db).Create(ctx, makePort("Custom", 9000, model.ProtocolTCP))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := NewDB(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	require.NoError(t, RunMigrations(reopened.Writer))

	all, err := NewPortRepo(reopened).List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 9000, all[0].Number)
	assert.Equal(t, path, reopened.Path())
}
