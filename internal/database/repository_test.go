package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaldes/biblioteca/internal/entities"
)

func setupTestDB(t *testing.T) *Database {
	dbPath := filepath.Join(t.TempDir(), "test_"+t.Name()+".db")

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return db
}

func strptr(s string) *string { return &s }

func TestNewDatabase_MissingPath(t *testing.T) {
	_, err := NewDatabase("")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRepository_ListEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Library](db.DB)

	libs, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, libs)
	assert.NotNil(t, libs)
}

func TestRepository_CreateAssignsID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Library](db.DB)

	created, err := repo.Create(context.Background(), &entities.Library{
		Name:    "Biblioteca Central",
		OwnerID: "owner-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "Biblioteca Central", created.Name)
}

func TestRepository_GetMissingReturnsNilNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Library](db.DB)

	lib, err := repo.Get(context.Background(), "no-such-id")

	require.NoError(t, err)
	assert.Nil(t, lib)
}

func TestRepository_GetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Book](db.DB)

	created, err := repo.Create(context.Background(), &entities.Book{
		Title:     "Cien años de soledad",
		Author:    "Gabriel García Márquez",
		Available: true,
		LibraryID: "lib-1",
	})
	require.NoError(t, err)

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Cien años de soledad", got.Title)
}

func TestRepository_UpdateAppliesOnlyPatchedFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Library](db.DB)

	created, err := repo.Create(context.Background(), &entities.Library{
		Name:    "Sucursal Norte",
		Address: "Av. Siempre Viva 742",
		OwnerID: "owner-1",
	})
	require.NoError(t, err)

	updated, err := repo.Update(context.Background(), created.ID, entities.LibraryPatch{
		Name: strptr("Sucursal Norte Renovada"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Sucursal Norte Renovada", updated.Name)
	assert.Equal(t, "Av. Siempre Viva 742", updated.Address)
	assert.Equal(t, "owner-1", updated.OwnerID)
}

func TestRepository_UpdateMissingIDFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Library](db.DB)

	_, err := repo.Update(context.Background(), "no-such-id", entities.LibraryPatch{
		Name: strptr("Whatever"),
	})

	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "update", storeErr.Op)
	assert.Equal(t, "libraries", storeErr.Table)
}

func TestRepository_EmptyPatchStillChecksExistence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Library](db.DB)

	_, err := repo.Update(context.Background(), "no-such-id", entities.LibraryPatch{})

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRepository_DeleteMissingIDIsSilent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Member](db.DB)

	err := repo.Delete(context.Background(), "no-such-id")

	assert.NoError(t, err)
}

func TestRepository_DeleteRemovesRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Member](db.DB)

	created, err := repo.Create(context.Background(), &entities.Member{
		FullName: "Ana Pérez",
		Email:    "ana@example.com",
		Active:   true,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_UpsertInsertsWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Profile](db.DB, "full_name", "email")

	profile, err := repo.Upsert(context.Background(), &entities.Profile{
		Base:     entities.Base{ID: "user-1"},
		FullName: "María López",
		Email:    "maria@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "María López", profile.FullName)
}

func TestRepository_UpsertUpdatesWhenPresent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Profile](db.DB, "full_name", "email")

	first, err := repo.Upsert(context.Background(), &entities.Profile{
		Base:     entities.Base{ID: "user-1"},
		FullName: "María López",
		Email:    "maria@example.com",
	})
	require.NoError(t, err)

	// The second write lands on the same row and keeps its creation time.
	time.Sleep(10 * time.Millisecond)
	second, err := repo.Upsert(context.Background(), &entities.Profile{
		Base:     entities.Base{ID: "user-1"},
		FullName: "María López Vda.",
		Email:    "maria@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "María López Vda.", second.FullName)
	assert.WithinDuration(t, first.CreatedAt, second.CreatedAt, time.Millisecond)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepository_ListReturnsAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Book](db.DB)

	for _, title := range []string{"Rayuela", "Ficciones", "Pedro Páramo"} {
		_, err := repo.Create(context.Background(), &entities.Book{
			Title:     title,
			Available: true,
			LibraryID: "lib-1",
		})
		require.NoError(t, err)
	}

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 3)
}

func TestRepository_LoanDatesRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository[entities.Loan](db.DB)

	loanDate := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(context.Background(), &entities.Loan{
		BookID:     "book-1",
		BorrowerID: "member-1",
		LibraryID:  "lib-1",
		LoanDate:   loanDate,
		ReturnDate: &returnDate,
	})
	require.NoError(t, err)

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, loanDate.Equal(got.LoanDate))
	require.NotNil(t, got.ReturnDate)
	assert.True(t, returnDate.Equal(*got.ReturnDate))
	assert.False(t, got.Returned)
}
