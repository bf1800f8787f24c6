package repository

import (
	"context"
	"testing"

	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequirementTrimsName(t *testing.T) {
	repo := newTestRepository(t)

	requirement, err := repo.Requirement.Create(context.Background(), nil, "  Library  ")
	require.NoError(t, err)
	assert.Equal(t, "Library", requirement.Name)
	assert.NotEmpty(t, requirement.ID)
}

func TestCreateRequirementEmptyName(t *testing.T) {
	repo := newTestRepository(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := repo.Requirement.Create(context.Background(), nil, name)
		assert.ErrorIs(t, err, ErrEmptyRequirementName)
	}

	assert.EqualValues(t, 0, countRows(t, repo, &model.Requirement{}))
}

func TestCreateDuplicateRequirement(t *testing.T) {
	repo := newTestRepository(t)

	createRequirement(t, repo, "Library")

	_, err := repo.Requirement.Create(context.Background(), nil, "Library")
	assert.ErrorIs(t, err, ErrDuplicateRequirement)

	// trimming makes these the same name
	_, err = repo.Requirement.Create(context.Background(), nil, " Library ")
	assert.ErrorIs(t, err, ErrDuplicateRequirement)

	assert.EqualValues(t, 1, countRows(t, repo, &model.Requirement{}))
}

func TestListRequirementsSortedByName(t *testing.T) {
	repo := newTestRepository(t)

	for _, name := range []string{"Library", "Accounts", "Lab"} {
		createRequirement(t, repo, name)
	}

	requirements, err := repo.Requirement.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, requirements, 3)

	names := make([]string, 0, len(requirements))
	for _, r := range requirements {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Accounts", "Lab", "Library"}, names)
}

func TestDeleteRequirementCascadesToCells(t *testing.T) {
	repo := newTestRepository(t)

	student := createStudent(t, repo, "0221-1001", "John Doe")
	library := createRequirement(t, repo, "Library")
	lab := createRequirement(t, repo, "Lab")
	setCompleted(t, repo, student.ID, library.ID)
	setCompleted(t, repo, student.ID, lab.ID)

	require.NoError(t, repo.Requirement.Delete(context.Background(), nil, library.ID))

	var remaining []model.StudentRequirement
	require.NoError(t, repo.DB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, lab.ID, remaining[0].RequirementID)

	_, err := repo.Requirement.GetById(context.Background(), nil, library.ID)
	assert.ErrorIs(t, err, ErrRequirementNotFound)
}

func TestDeleteRequirementIdempotent(t *testing.T) {
	repo := newTestRepository(t)

	library := createRequirement(t, repo, "Library")

	require.NoError(t, repo.Requirement.Delete(context.Background(), nil, library.ID))
	require.NoError(t, repo.Requirement.Delete(context.Background(), nil, library.ID))
	require.NoError(t, repo.Requirement.Delete(context.Background(), nil, "no-such-id"))
}
