package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/database"
)

// NewTestPlanRepository returns a repository over a private in-memory
// database that is closed when the test ends.
func NewTestPlanRepository(t *testing.T) *persistence.GormPlanRepository {
	t.Helper()
	return persistence.NewGormPlanRepository(newTestDB(t))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err, "open in-memory plan database")
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}
