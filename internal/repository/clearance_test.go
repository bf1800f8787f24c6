package repository

import (
	"context"
	"testing"

	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedCompletedStudent creates a student with the given requirements all
// ticked, the usual pre-submit state.
func seedCompletedStudent(t *testing.T, repo *Repository, names ...string) *model.User {
	t.Helper()

	student := createStudent(t, repo, "0221-1001", "John Doe")
	for _, name := range names {
		requirement := createRequirement(t, repo, name)
		setCompleted(t, repo, student.ID, requirement.ID)
	}

	_, err := repo.Clearance.EnsureActive(context.Background(), nil, student.ID)
	require.NoError(t, err)

	return student
}

func TestSubmitHappyPath(t *testing.T) {
	repo := newTestRepository(t)
	student := seedCompletedStudent(t, repo, "Library", "Lab", "Accounts")

	snapshot, err := repo.Clearance.Submit(context.Background(), student.ID)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", snapshot.StudentName)
	assert.Equal(t, "0221-1001", snapshot.StudentNumber)
	assert.Len(t, snapshot.ReferenceNumber, 12)
	// names are sorted at archival time
	assert.Equal(t, []string{"Accounts", "Lab", "Library"}, snapshot.CompletedRequirements)
	assert.False(t, snapshot.SubmittedAt.IsZero())

	// live state is consumed by the submit
	assert.EqualValues(t, 0, countRows(t, repo, &model.StudentRequirement{}))
	_, err = repo.Clearance.GetActiveByStudent(context.Background(), nil, student.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the archive grew by one
	assert.EqualValues(t, 1, countRows(t, repo, &model.SubmittedClearance{}))

	stored, err := repo.Clearance.GetLatestSubmittedByStudent(context.Background(), nil, student.ID)
	require.NoError(t, err)
	assert.Equal(t, snapshot.ID, stored.ID)
}

func TestSubmitIncompleteLeavesStateUntouched(t *testing.T) {
	repo := newTestRepository(t)

	student := createStudent(t, repo, "0221-1001", "John Doe")
	library := createRequirement(t, repo, "Library")
	createRequirement(t, repo, "Lab")
	setCompleted(t, repo, student.ID, library.ID)

	_, err := repo.Clearance.Submit(context.Background(), student.ID)
	assert.ErrorIs(t, err, ErrIncomplete)

	assert.EqualValues(t, 1, countRows(t, repo, &model.StudentRequirement{}))
	assert.EqualValues(t, 2, countRows(t, repo, &model.Requirement{}))
	assert.EqualValues(t, 0, countRows(t, repo, &model.SubmittedClearance{}))
}

func TestSubmitUnknownStudent(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Clearance.Submit(context.Background(), "no-such-student")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestSubmitWithEmptyCatalog(t *testing.T) {
	repo := newTestRepository(t)

	// zero requirements means the gate is trivially satisfied
	student := createStudent(t, repo, "0221-1001", "John Doe")

	snapshot, err := repo.Clearance.Submit(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Empty(t, snapshot.CompletedRequirements)
	assert.NotNil(t, snapshot.CompletedRequirements)
}

func TestUndoDoesNotRehydrateCells(t *testing.T) {
	repo := newTestRepository(t)
	student := seedCompletedStudent(t, repo, "Library", "Lab")

	_, err := repo.Clearance.Submit(context.Background(), student.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Clearance.Undo(context.Background(), nil, student.ID))

	// the archive entry is gone
	assert.EqualValues(t, 0, countRows(t, repo, &model.SubmittedClearance{}))
	_, err = repo.Clearance.GetLatestSubmittedByStudent(context.Background(), nil, student.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// cells stay empty, the snapshot never recorded them
	assert.EqualValues(t, 0, countRows(t, repo, &model.StudentRequirement{}))

	rows, err := repo.StudentRequirement.GetForStudent(context.Background(), nil, student.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.False(t, row.Completed)
	}
}

func TestDeleteRequirementKeepsSnapshot(t *testing.T) {
	repo := newTestRepository(t)
	student := seedCompletedStudent(t, repo, "Library", "Lab")

	_, err := repo.Clearance.Submit(context.Background(), student.ID)
	require.NoError(t, err)

	requirements, err := repo.Requirement.List(context.Background(), nil)
	require.NoError(t, err)
	for _, r := range requirements {
		if r.Name == "Lab" {
			require.NoError(t, repo.Requirement.Delete(context.Background(), nil, r.ID))
		}
	}

	snapshot, err := repo.Clearance.GetLatestSubmittedByStudent(context.Background(), nil, student.ID)
	require.NoError(t, err)
	assert.Contains(t, snapshot.CompletedRequirements, "Lab")
}

func TestResetAllWipesEverything(t *testing.T) {
	repo := newTestRepository(t)
	student := seedCompletedStudent(t, repo, "Library", "Lab")

	other := createStudent(t, repo, "0222-1002", "Jane Smith")
	_, err := repo.Clearance.EnsureActive(context.Background(), nil, other.ID)
	require.NoError(t, err)

	_, err = repo.Clearance.Submit(context.Background(), student.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Clearance.ResetAll(context.Background(), nil))

	assert.EqualValues(t, 0, countRows(t, repo, &model.Requirement{}))
	assert.EqualValues(t, 0, countRows(t, repo, &model.StudentRequirement{}))
	assert.EqualValues(t, 0, countRows(t, repo, &model.SubmittedClearance{}))

	var clearances []model.Clearance
	require.NoError(t, repo.DB.Find(&clearances).Error)
	for _, c := range clearances {
		assert.False(t, c.Submitted)
	}

	// students survive the reset
	assert.EqualValues(t, 2, countRows(t, repo, &model.User{}))
}

func TestAssignSignatureTemplate(t *testing.T) {
	repo := newTestRepository(t)

	first := createStudent(t, repo, "0221-1001", "John Doe")
	second := createStudent(t, repo, "0222-1002", "Jane Smith")
	for _, s := range []*model.User{first, second} {
		_, err := repo.Clearance.EnsureActive(context.Background(), nil, s.ID)
		require.NoError(t, err)
	}

	require.NoError(t, repo.Clearance.AssignSignatureTemplate(context.Background(), nil, "signatures/templates/sig_v1.png"))

	for _, s := range []*model.User{first, second} {
		active, err := repo.Clearance.GetActiveByStudent(context.Background(), nil, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "signatures/templates/sig_v1.png", active.SignatureTemplate)
	}

	// clearance rows created afterwards pick up the current template
	third := createStudent(t, repo, "0223-1003", "Bob Stone")
	active, err := repo.Clearance.EnsureActive(context.Background(), nil, third.ID)
	require.NoError(t, err)
	assert.Equal(t, "signatures/templates/sig_v1.png", active.SignatureTemplate)
}

func TestAssignSignatureTemplateDoesNotRewriteSnapshots(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Clearance.AssignSignatureTemplate(context.Background(), nil, "signatures/templates/old.png"))

	student := seedCompletedStudent(t, repo, "Library")
	snapshot, err := repo.Clearance.Submit(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, "signatures/templates/old.png", snapshot.SignatureTemplate)

	require.NoError(t, repo.Clearance.AssignSignatureTemplate(context.Background(), nil, "signatures/templates/new.png"))

	stored, err := repo.Clearance.GetSubmittedById(context.Background(), nil, snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, "signatures/templates/old.png", stored.SignatureTemplate)
}

func TestListSubmittedMostRecentFirst(t *testing.T) {
	repo := newTestRepository(t)

	first := createStudent(t, repo, "0221-1001", "John Doe")
	second := createStudent(t, repo, "0222-1002", "Jane Smith")

	_, err := repo.Clearance.Submit(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = repo.Clearance.Submit(context.Background(), second.ID)
	require.NoError(t, err)

	snapshots, err := repo.Clearance.ListSubmitted(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.False(t, snapshots[0].SubmittedAt.Before(snapshots[1].SubmittedAt))
}
