package repository

import (
	"context"
	"testing"

	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetForStudentMissingCellsReadFalse(t *testing.T) {
	repo := newTestRepository(t)

	student := createStudent(t, repo, "0221-1001", "John Doe")
	library := createRequirement(t, repo, "Library")
	createRequirement(t, repo, "Lab")
	setCompleted(t, repo, student.ID, library.ID)

	rows, err := repo.StudentRequirement.GetForStudent(context.Background(), nil, student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// sorted by name, Lab has no cell and defaults to false
	assert.Equal(t, "Lab", rows[0].Name)
	assert.False(t, rows[0].Completed)
	assert.Equal(t, "Library", rows[1].Name)
	assert.True(t, rows[1].Completed)
}

func TestGetForStudentEmptyCatalog(t *testing.T) {
	repo := newTestRepository(t)

	student := createStudent(t, repo, "0221-1001", "John Doe")

	rows, err := repo.StudentRequirement.GetForStudent(context.Background(), nil, student.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

func TestSetIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)

	student := createStudent(t, repo, "0221-1001", "John Doe")
	library := createRequirement(t, repo, "Library")

	setCompleted(t, repo, student.ID, library.ID)
	setCompleted(t, repo, student.ID, library.ID)

	assert.EqualValues(t, 1, countRows(t, repo, &model.StudentRequirement{}))
}

func TestSetTogglesExistingCell(t *testing.T) {
	repo := newTestRepository(t)

	student := createStudent(t, repo, "0221-1001", "John Doe")
	library := createRequirement(t, repo, "Library")

	setCompleted(t, repo, student.ID, library.ID)
	require.NoError(t, repo.StudentRequirement.Set(context.Background(), nil, student.ID, library.ID, false))

	var cell model.StudentRequirement
	require.NoError(t, repo.DB.First(&cell).Error)
	assert.False(t, cell.Completed)
	assert.EqualValues(t, 1, countRows(t, repo, &model.StudentRequirement{}))
}

func TestClearForStudentOnlyTouchesThatStudent(t *testing.T) {
	repo := newTestRepository(t)

	john := createStudent(t, repo, "0221-1001", "John Doe")
	jane := createStudent(t, repo, "0222-1002", "Jane Smith")
	library := createRequirement(t, repo, "Library")
	setCompleted(t, repo, john.ID, library.ID)
	setCompleted(t, repo, jane.ID, library.ID)

	require.NoError(t, repo.StudentRequirement.ClearForStudent(context.Background(), nil, john.ID))

	var remaining []model.StudentRequirement
	require.NoError(t, repo.DB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, jane.ID, remaining[0].StudentID)
}

func TestClearAllEmptiesMatrix(t *testing.T) {
	repo := newTestRepository(t)

	john := createStudent(t, repo, "0221-1001", "John Doe")
	jane := createStudent(t, repo, "0222-1002", "Jane Smith")
	library := createRequirement(t, repo, "Library")
	setCompleted(t, repo, john.ID, library.ID)
	setCompleted(t, repo, jane.ID, library.ID)

	require.NoError(t, repo.StudentRequirement.ClearAll(context.Background(), nil))

	assert.EqualValues(t, 0, countRows(t, repo, &model.StudentRequirement{}))
	// the catalog itself is untouched
	assert.EqualValues(t, 1, countRows(t, repo, &model.Requirement{}))
}

func TestSetUnknownStudentOrRequirement(t *testing.T) {
	repo := newTestRepository(t)

	student := createStudent(t, repo, "0221-1001", "John Doe")
	library := createRequirement(t, repo, "Library")

	err := repo.StudentRequirement.Set(context.Background(), nil, "no-such-student", library.ID, true)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	err = repo.StudentRequirement.Set(context.Background(), nil, student.ID, "no-such-requirement", true)
	assert.ErrorIs(t, err, ErrRequirementNotFound)

	assert.EqualValues(t, 0, countRows(t, repo, &model.StudentRequirement{}))
}
