package repository

import (
	"context"
	"testing"

	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestRepository opens an isolated in-memory database per test. A single
// connection keeps the whole pool pointed at the same memory database.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDb.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Requirement{},
		&model.StudentRequirement{},
		&model.Clearance{},
		&model.SubmittedClearance{},
		&model.Setting{},
	))

	return NewRepository(db, zap.NewNop().Sugar())
}

func createStudent(t *testing.T, repo *Repository, username, name string) *model.User {
	t.Helper()

	student, err := repo.User.Create(context.Background(), nil, model.User{
		Username: username,
		Password: "irrelevant",
		Name:     name,
		Role:     constant.UserRoleStudent,
	})
	require.NoError(t, err)

	return student
}

func createRequirement(t *testing.T, repo *Repository, name string) *model.Requirement {
	t.Helper()

	requirement, err := repo.Requirement.Create(context.Background(), nil, name)
	require.NoError(t, err)

	return requirement
}

func setCompleted(t *testing.T, repo *Repository, studentId, requirementId string) {
	t.Helper()

	require.NoError(t, repo.StudentRequirement.Set(context.Background(), nil, studentId, requirementId, true))
}

func countRows(t *testing.T, repo *Repository, mdl any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, repo.DB.Model(mdl).Count(&count).Error)

	return count
}
