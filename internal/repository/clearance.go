package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	constant "github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/kimhour/StudentClearance/internal/util"
	"gorm.io/gorm"
)

// ClearanceRepository owns the clearance state machine: submit, undo, bulk
// reset and the signature template assignment. Matrix cleanup goes through the
// StudentRequirementRepository so cell deletion has a single owner.
type ClearanceRepository struct {
	*baseRepository
	studentRequirement *StudentRequirementRepository
}

func (cr ClearanceRepository) GetActiveByStudent(ctx context.Context, tx *gorm.DB, studentId string) (*model.Clearance, error) {
	db := cr.getDB(tx)
	var clearance *model.Clearance

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Clearance{}).Where("student_id = ?", studentId).First(&clearance).Error; err != nil {
		return nil, err
	}

	return clearance, nil
}

func (cr ClearanceRepository) currentSignatureTemplate(tx *gorm.DB) string {
	var setting model.Setting
	if err := tx.Where("key = ?", model.SettingSignatureTemplate).First(&setting).Error; err != nil {
		return ""
	}

	return setting.Value
}

// EnsureActive returns the live clearance row of a student, creating it with
// the current signature template when it does not exist yet.
func (cr *ClearanceRepository) EnsureActive(ctx context.Context, tx *gorm.DB, studentId string) (*model.Clearance, error) {
	db := cr.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var clearance model.Clearance
	txErr := cr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		err := tx.Where("student_id = ?", studentId).First(&clearance).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		clearance = model.Clearance{
			StudentID:         studentId,
			SignatureTemplate: cr.currentSignatureTemplate(tx),
		}
		return tx.Create(&clearance).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	return &clearance, nil
}

// AssignSignatureTemplate stores the uri as the process-wide current template
// and pushes it onto every live clearance row. Submitted snapshots keep
// whatever template they were archived with.
func (cr *ClearanceRepository) AssignSignatureTemplate(ctx context.Context, tx *gorm.DB, uri string) error {
	cr.logger.Debugf("Assign signature template: %s \n", uri)

	db := cr.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return cr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		var setting model.Setting
		err := tx.Where("key = ?", model.SettingSignatureTemplate).First(&setting).Error
		switch {
		case err == nil:
			if err := tx.Model(&setting).Update("value", uri).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			setting = model.Setting{Key: model.SettingSignatureTemplate, Value: uri}
			if err := tx.Create(&setting).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Model(&model.Clearance{}).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Update("signature_template", uri).Error
	})
}

// Submit archives the clearance of a student. The completeness gate, the
// snapshot and the cleanup of live rows run in one serializable transaction,
// so a requirement added concurrently cannot slip between the count check and
// the snapshot; the later transaction fails with ErrConflict instead.
func (cr *ClearanceRepository) Submit(ctx context.Context, studentId string) (*model.SubmittedClearance, error) {
	cr.logger.Debugf("Submit clearance for student: %s \n", studentId)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	tx := cr.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	snapshot, err := cr.submitInTx(ctx, tx, studentId)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if isSerializationFailure(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return snapshot, nil
}

func (cr *ClearanceRepository) submitInTx(ctx context.Context, tx *gorm.DB, studentId string) (*model.SubmittedClearance, error) {
	var total int64
	if err := tx.Model(&model.Requirement{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var completed int64
	if err := tx.Model(&model.StudentRequirement{}).
		Where("student_id = ? AND completed = ?", studentId, true).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	if completed < total {
		return nil, ErrIncomplete
	}

	var student model.User
	if err := tx.Where("id = ? AND role = ?", studentId, constant.UserRoleStudent).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	var completedNames []string
	if err := tx.Table("requirements").
		Joins("JOIN student_requirements sr ON sr.requirement_id = requirements.id").
		Where("sr.student_id = ? AND sr.completed = ?", studentId, true).
		Order("requirements.name asc").
		Pluck("requirements.name", &completedNames).Error; err != nil {
		return nil, err
	}
	if completedNames == nil {
		completedNames = []string{}
	}

	signatureTemplate := cr.currentSignatureTemplate(tx)
	var active model.Clearance
	if err := tx.Where("student_id = ?", studentId).First(&active).Error; err == nil {
		signatureTemplate = active.SignatureTemplate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reference, err := util.GenerateNChar(12)
	if err != nil {
		return nil, err
	}

	snapshot := model.SubmittedClearance{
		StudentID:             studentId,
		StudentName:           student.Name,
		StudentNumber:         student.Username,
		ReferenceNumber:       reference,
		CompletedRequirements: completedNames,
		SignatureTemplate:     signatureTemplate,
		SubmittedAt:           time.Now().UTC(),
	}
	if err := tx.Create(&snapshot).Error; err != nil {
		return nil, err
	}

	if err := tx.Where("student_id = ?", studentId).Delete(&model.Clearance{}).Error; err != nil {
		return nil, err
	}
	if err := cr.studentRequirement.ClearForStudent(ctx, tx, studentId); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Undo removes every archived snapshot of the student (usually one, tolerates
// many) and flips the live row back to not submitted. Completion cells are not
// restored, the snapshot never recorded false cells.
func (cr *ClearanceRepository) Undo(ctx context.Context, tx *gorm.DB, studentId string) error {
	cr.logger.Debugf("Undo submission for student: %s \n", studentId)

	db := cr.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return cr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", studentId).Delete(&model.SubmittedClearance{}).Error; err != nil {
			return err
		}

		return tx.Model(&model.Clearance{}).
			Where("student_id = ?", studentId).
			Update("submitted", false).Error
	})
}

// ResetAll wipes the catalog, the matrix and every archived snapshot, and
// flips every live clearance back to not submitted. Semester boundary use,
// not undoable.
func (cr *ClearanceRepository) ResetAll(ctx context.Context, tx *gorm.DB) error {
	cr.logger.Warn("Bulk reset of all clearance state \n")

	db := cr.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return cr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		if err := cr.studentRequirement.ClearAll(ctx, tx); err != nil {
			return err
		}
		if err := global.Delete(&model.Requirement{}).Error; err != nil {
			return err
		}
		if err := global.Delete(&model.SubmittedClearance{}).Error; err != nil {
			return err
		}

		return global.Model(&model.Clearance{}).Update("submitted", false).Error
	})
}

// ListSubmitted returns every archived snapshot, most recent first.
func (cr ClearanceRepository) ListSubmitted(ctx context.Context, tx *gorm.DB) ([]model.SubmittedClearance, error) {
	db := cr.getDB(tx)
	var snapshots []model.SubmittedClearance

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.SubmittedClearance{}).
		Order("submitted_at desc").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}

func (cr ClearanceRepository) GetSubmittedById(ctx context.Context, tx *gorm.DB, id string) (*model.SubmittedClearance, error) {
	db := cr.getDB(tx)
	var snapshot *model.SubmittedClearance

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.SubmittedClearance{}).Where("id = ?", id).First(&snapshot).Error; err != nil {
		return nil, err
	}

	return snapshot, nil
}

// GetLatestSubmittedByStudent backs the student clearance view.
func (cr ClearanceRepository) GetLatestSubmittedByStudent(ctx context.Context, tx *gorm.DB, studentId string) (*model.SubmittedClearance, error) {
	db := cr.getDB(tx)
	var snapshot *model.SubmittedClearance

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.SubmittedClearance{}).
		Where("student_id = ?", studentId).
		Order("submitted_at desc").
		First(&snapshot).Error; err != nil {
		return nil, err
	}

	return snapshot, nil
}
