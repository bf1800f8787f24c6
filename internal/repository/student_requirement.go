package repository

import (
	"context"
	"errors"

	constant "github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/model"
	"gorm.io/gorm"
)

type StudentRequirementRepository struct {
	*baseRepository
}

// RequirementStatus is one row of the per-student requirement view: the whole
// catalog left-joined with the student's cells, missing cells read as
// completed=false.
type RequirementStatus struct {
	RequirementID string `json:"requirement_id"`
	Name          string `json:"name"`
	Completed     bool   `json:"completed"`
}

// GetForStudent left-joins the requirement catalog so requirements with no
// cell appear with completed=false. Sorted by requirement name.
func (sr StudentRequirementRepository) GetForStudent(ctx context.Context, tx *gorm.DB, studentId string) ([]RequirementStatus, error) {
	sr.logger.Debugf("Get requirement status for student: %s \n", studentId)

	db := sr.getDB(tx)
	var rows []RequirementStatus

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	err := db.WithContext(ctx).Table("requirements").
		Select("requirements.id AS requirement_id, requirements.name AS name, COALESCE(sr.completed, false) AS completed").
		Joins("LEFT JOIN student_requirements sr ON sr.requirement_id = requirements.id AND sr.student_id = ?", studentId).
		Order("requirements.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []RequirementStatus{}
	}

	return rows, nil
}

// Set upserts one completion cell. Referential integrity is checked first so
// the caller gets ErrStudentNotFound/ErrRequirementNotFound instead of a raw
// constraint error. Setting the same value twice is a no-op.
func (sr *StudentRequirementRepository) Set(ctx context.Context, tx *gorm.DB, studentId, requirementId string, completed bool) error {
	sr.logger.Debugf("Set cell student=%s requirement=%s completed=%t \n", studentId, requirementId, completed)

	db := sr.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return sr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		var studentCount int64
		if err := tx.Model(&model.User{}).
			Where("id = ? AND role = ?", studentId, constant.UserRoleStudent).
			Count(&studentCount).Error; err != nil {
			return err
		}
		if studentCount == 0 {
			return ErrStudentNotFound
		}

		var requirementCount int64
		if err := tx.Model(&model.Requirement{}).Where("id = ?", requirementId).Count(&requirementCount).Error; err != nil {
			return err
		}
		if requirementCount == 0 {
			return ErrRequirementNotFound
		}

		var cell model.StudentRequirement
		err := tx.Where("student_id = ? AND requirement_id = ?", studentId, requirementId).First(&cell).Error
		switch {
		case err == nil:
			return tx.Model(&cell).Update("completed", completed).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			cell = model.StudentRequirement{
				StudentID:     studentId,
				RequirementID: requirementId,
				Completed:     completed,
			}
			return tx.Create(&cell).Error
		default:
			return err
		}
	})
}

// ClearForStudent bulk-deletes every cell of one student.
func (sr *StudentRequirementRepository) ClearForStudent(ctx context.Context, tx *gorm.DB, studentId string) error {
	sr.logger.Debugf("Clear cells for student: %s \n", studentId)

	db := sr.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("student_id = ?", studentId).Delete(&model.StudentRequirement{}).Error
}

// ClearAll bulk-deletes the entire matrix.
func (sr *StudentRequirementRepository) ClearAll(ctx context.Context, tx *gorm.DB) error {
	sr.logger.Debug("Clear all cells \n")

	db := sr.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.StudentRequirement{}).Error
}
