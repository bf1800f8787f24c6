package repository

import (
	"context"
	"testing"

	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterStudentDuplicateNumber(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.User.RegisterStudent(context.Background(), nil, model.User{
		Username: "0221-1001",
		Password: "x",
		Name:     "John Doe",
	})
	require.NoError(t, err)

	_, err = repo.User.RegisterStudent(context.Background(), nil, model.User{
		Username: "0221-1001",
		Password: "x",
		Name:     "Someone Else",
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	assert.EqualValues(t, 1, countRows(t, repo, &model.User{}))
}

func TestRegisterStudentForcesStudentRole(t *testing.T) {
	repo := newTestRepository(t)

	created, err := repo.User.RegisterStudent(context.Background(), nil, model.User{
		Username: "0221-1001",
		Password: "x",
		Name:     "John Doe",
		Role:     constant.UserRoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, constant.UserRoleStudent, created.Role)
}

func newFilterFixture(t *testing.T, repo *Repository) {
	t.Helper()

	students := []model.User{
		{Username: "0221-1001", Name: "John Doe", Role: constant.UserRoleStudent, Course: "IT", Year: 3, Major: "WMAD", Section: "A", Password: "x"},
		{Username: "0222-1002", Name: "Jane Smith", Role: constant.UserRoleStudent, Course: "CS", Year: 2, Section: "B", Password: "x"},
		{Username: "0223-1003", Name: "Bob Stone", Role: constant.UserRoleStudent, Course: "IT", Year: 2, Section: "A", Password: "x"},
	}
	for _, s := range students {
		_, err := repo.User.Create(context.Background(), nil, s)
		require.NoError(t, err)
	}

	_, err := repo.User.Create(context.Background(), nil, model.User{
		Username: "admin1", Name: "Administrator", Role: constant.UserRoleAdmin, Password: "x",
	})
	require.NoError(t, err)
}

func TestListStudentsExcludesAdmins(t *testing.T) {
	repo := newTestRepository(t)
	newFilterFixture(t, repo)

	rows, err := repo.User.ListStudents(context.Background(), nil, StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestListStudentsFilters(t *testing.T) {
	repo := newTestRepository(t)
	newFilterFixture(t, repo)

	year := 2
	tests := []struct {
		name     string
		filter   StudentFilter
		expected []string
	}{
		{"by substring of number", StudentFilter{StudentNumber: "1002"}, []string{"0222-1002"}},
		{"substring is case insensitive", StudentFilter{StudentNumber: "022"}, []string{"0221-1001", "0222-1002", "0223-1003"}},
		{"by course", StudentFilter{Course: "IT"}, []string{"0221-1001", "0223-1003"}},
		{"by year", StudentFilter{Year: &year}, []string{"0222-1002", "0223-1003"}},
		{"by major", StudentFilter{Major: "WMAD"}, []string{"0221-1001"}},
		{"combined", StudentFilter{Course: "IT", Year: &year}, []string{"0223-1003"}},
		{"no match", StudentFilter{Course: "EE"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := repo.User.ListStudents(context.Background(), nil, tt.filter)
			require.NoError(t, err)

			usernames := make([]string, 0, len(rows))
			for _, row := range rows {
				usernames = append(usernames, row.Username)
			}
			assert.Equal(t, tt.expected, usernames)
		})
	}
}

func TestListStudentsReportsClearanceState(t *testing.T) {
	repo := newTestRepository(t)
	newFilterFixture(t, repo)

	john, err := repo.User.GetByUsername(context.Background(), nil, "0221-1001")
	require.NoError(t, err)

	library := createRequirement(t, repo, "Library")
	setCompleted(t, repo, john.ID, library.ID)

	_, err = repo.Clearance.Submit(context.Background(), john.ID)
	require.NoError(t, err)

	rows, err := repo.User.ListStudents(context.Background(), nil, StudentFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, row := range rows {
		if row.Username == "0221-1001" {
			assert.True(t, row.ClearanceSubmitted)
			// cells were consumed by the submit
			assert.Empty(t, row.Requirements)
		} else {
			assert.False(t, row.ClearanceSubmitted)
		}
	}
}
