package repository

import (
	"context"
	"errors"
	"strings"

	constant "github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	*baseRepository
}

// StudentFilter narrows the cohort listing. Empty fields mean the predicate is
// absent; StudentNumber matches as a case-insensitive substring of username.
type StudentFilter struct {
	StudentNumber string
	Course        string
	Year          *int
	Major         string
	Section       string
}

// CompletionCell is a single existing matrix entry, as returned by the cohort
// listing (no cross-join against the catalog).
type CompletionCell struct {
	RequirementID string `json:"requirement_id"`
	Completed     bool   `json:"completed"`
}

// StudentClearanceRow is one student of the cohort listing joined with their
// clearance state.
type StudentClearanceRow struct {
	ID                 string           `json:"id"`
	Username           string           `json:"username"`
	Name               string           `json:"name"`
	Course             string           `json:"course,omitempty"`
	Year               int              `json:"year,omitempty"`
	Major              string           `json:"major,omitempty"`
	Section            string           `json:"section,omitempty"`
	ClearanceSubmitted bool             `json:"clearance_submitted"`
	Requirements       []CompletionCell `json:"requirements"`
}

func (ur UserRepository) GetById(ctx context.Context, tx *gorm.DB, userId string) (*model.User, error) {
	ur.logger.Debugf("Get user by id: %s \n", userId)

	db := ur.getDB(tx)
	var user *model.User

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).Where(&model.User{BaseModel: model.BaseModel{ID: userId}}).First(&user).Error; err != nil {
		return user, err
	}

	return user, nil
}

func (ur UserRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*model.User, error) {
	ur.logger.Debugf("Get user by username: %s \n", username)

	db := ur.getDB(tx)
	var user *model.User

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).First(&user).Error; err != nil {
		return user, err
	}

	return user, nil
}

func (ur *UserRepository) Create(ctx context.Context, tx *gorm.DB, newUser model.User) (*model.User, error) {
	ur.logger.Debugf("Create user with username: %s \n", newUser.Username)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).Create(&newUser).Error; err != nil {
		return nil, err
	}

	return &newUser, nil
}

// RegisterStudent creates a student account after checking that the student
// number is still free. Runs in one transaction.
func (ur *UserRepository) RegisterStudent(ctx context.Context, tx *gorm.DB, newUser model.User) (*model.User, error) {
	ur.logger.Debugf("Register student with student number: %s \n", newUser.Username)

	db := ur.getDB(tx)
	var created *model.User

	txErr := ur.withTx(db, func(tx *gorm.DB) error {
		_, err := ur.GetByUsername(ctx, tx, newUser.Username)
		if err == nil {
			return gorm.ErrDuplicatedKey
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newUser.Role = constant.UserRoleStudent
		created, err = ur.Create(ctx, tx, newUser)
		return err
	})
	if txErr != nil {
		if isUniqueViolation(txErr) {
			return nil, gorm.ErrDuplicatedKey
		}
		return nil, txErr
	}

	return created, nil
}

// ListAllStudents returns every student with academic attributes, ordered by
// student number.
func (ur UserRepository) ListAllStudents(ctx context.Context, tx *gorm.DB) ([]model.User, error) {
	ur.logger.Debug("List all students \n")

	db := ur.getDB(tx)
	var students []model.User

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", constant.UserRoleStudent).
		Order("username asc").
		Find(&students).Error; err != nil {
		return nil, err
	}

	return students, nil
}

// ListStudents returns the filtered cohort joined with clearance status and
// the existing completion cells of every matched student.
func (ur UserRepository) ListStudents(ctx context.Context, tx *gorm.DB, filter StudentFilter) ([]StudentClearanceRow, error) {
	ur.logger.Debugf("List students with filter: %+v \n", filter)

	db := ur.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	q := db.WithContext(ctx).Model(&model.User{}).Where("role = ?", constant.UserRoleStudent)
	if filter.StudentNumber != "" {
		q = q.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(filter.StudentNumber)+"%")
	}
	if filter.Course != "" {
		q = q.Where("course = ?", filter.Course)
	}
	if filter.Year != nil {
		q = q.Where("year = ?", *filter.Year)
	}
	if filter.Major != "" {
		q = q.Where("major = ?", filter.Major)
	}
	if filter.Section != "" {
		q = q.Where("section = ?", filter.Section)
	}

	var students []model.User
	if err := q.Order("username asc").Find(&students).Error; err != nil {
		return nil, err
	}

	if len(students) == 0 {
		return []StudentClearanceRow{}, nil
	}

	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}

	var clearances []model.Clearance
	if err := db.WithContext(ctx).Where("student_id IN ?", ids).Find(&clearances).Error; err != nil {
		return nil, err
	}
	submittedFlag := make(map[string]bool, len(clearances))
	for _, c := range clearances {
		submittedFlag[c.StudentID] = c.Submitted
	}

	var archivedIds []string
	if err := db.WithContext(ctx).Model(&model.SubmittedClearance{}).
		Distinct("student_id").
		Where("student_id IN ?", ids).
		Pluck("student_id", &archivedIds).Error; err != nil {
		return nil, err
	}
	for _, id := range archivedIds {
		submittedFlag[id] = true
	}

	var cells []model.StudentRequirement
	if err := db.WithContext(ctx).Where("student_id IN ?", ids).Find(&cells).Error; err != nil {
		return nil, err
	}
	cellsByStudent := make(map[string][]CompletionCell, len(ids))
	for _, cell := range cells {
		cellsByStudent[cell.StudentID] = append(cellsByStudent[cell.StudentID], CompletionCell{
			RequirementID: cell.RequirementID,
			Completed:     cell.Completed,
		})
	}

	rows := make([]StudentClearanceRow, 0, len(students))
	for _, s := range students {
		cells := cellsByStudent[s.ID]
		if cells == nil {
			cells = []CompletionCell{}
		}

		rows = append(rows, StudentClearanceRow{
			ID:                 s.ID,
			Username:           s.Username,
			Name:               s.Name,
			Course:             s.Course,
			Year:               s.Year,
			Major:              s.Major,
			Section:            s.Section,
			ClearanceSubmitted: submittedFlag[s.ID],
			Requirements:       cells,
		})
	}

	return rows, nil
}
