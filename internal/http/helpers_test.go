package http

import (
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/avaldes/biblioteca/internal/database"
)

func setupTestRepos(t *testing.T) (*database.Database, *database.Repositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "biblioteca.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, database.NewRepositories(db.DB)
}
