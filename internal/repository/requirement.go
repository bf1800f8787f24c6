package repository

import (
	"context"
	"errors"
	"strings"

	constant "github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/model"
	"gorm.io/gorm"
)

type RequirementRepository struct {
	*baseRepository
}

// List returns the whole catalog, ordered by name ascending (case-sensitive).
func (rr RequirementRepository) List(ctx context.Context, tx *gorm.DB) ([]model.Requirement, error) {
	rr.logger.Debug("List requirements \n")

	db := rr.getDB(tx)
	var requirements []model.Requirement

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Requirement{}).Order("name asc").Find(&requirements).Error; err != nil {
		return nil, err
	}

	return requirements, nil
}

// Create appends a requirement to the catalog. The name is trimmed first;
// empty names fail with ErrEmptyRequirementName and existing names with
// ErrDuplicateRequirement.
func (rr *RequirementRepository) Create(ctx context.Context, tx *gorm.DB, name string) (*model.Requirement, error) {
	rr.logger.Debugf("Create requirement with name: %s \n", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRequirementName
	}

	db := rr.getDB(tx)
	requirement := model.Requirement{Name: name}

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	txErr := rr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Requirement{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateRequirement
		}

		return tx.Create(&requirement).Error
	})
	if txErr != nil {
		// the unique constraint backs up the count check under concurrency
		if isUniqueViolation(txErr) {
			return nil, ErrDuplicateRequirement
		}
		return nil, txErr
	}

	return &requirement, nil
}

// Delete removes a requirement and cascades to its completion cells in one
// transaction. Submitted snapshots keep the denormalized name. Deleting an
// unknown id is a no-op success.
func (rr *RequirementRepository) Delete(ctx context.Context, tx *gorm.DB, requirementId string) error {
	rr.logger.Debugf("Delete requirement with id: %s \n", requirementId)

	db := rr.getDB(tx)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return rr.withTx(db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Where("requirement_id = ?", requirementId).Delete(&model.StudentRequirement{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", requirementId).Delete(&model.Requirement{}).Error
	})
}

// GetById is used by handlers that need to confirm existence before acting.
func (rr RequirementRepository) GetById(ctx context.Context, tx *gorm.DB, requirementId string) (*model.Requirement, error) {
	db := rr.getDB(tx)
	var requirement *model.Requirement

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Requirement{}).Where("id = ?", requirementId).First(&requirement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequirementNotFound
		}
		return nil, err
	}

	return requirement, nil
}
