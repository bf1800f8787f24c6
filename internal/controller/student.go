package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kimhour/StudentClearance/internal/repository"
	"github.com/kimhour/StudentClearance/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StudentController struct {
	*baseController
}

// ListStudents returns the filtered cohort with clearance status for the
// admin dashboard, alongside the requirement catalog used to render the
// matrix columns.
func (sc StudentController) ListStudents(ctx *gin.Context) {
	filter := repository.StudentFilter{
		StudentNumber: ctx.Query("student_number"),
		Course:        ctx.Query("course"),
		Major:         ctx.Query("major"),
		Section:       ctx.Query("section"),
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid year filter", util.GenerateErrorMessages(err, "year"), nil)
			return
		}
		filter.Year = &year
	}

	students, err := sc.app.Repository.User.ListStudents(ctx, nil, filter)
	if err != nil {
		sc.app.Logger.Errorf("Failed to list students: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list students", util.GenerateErrorMessages(err), nil)
		return
	}

	requirements, err := sc.app.Repository.Requirement.List(ctx, nil)
	if err != nil {
		sc.app.Logger.Errorf("Failed to list requirements: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list requirements", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"students":     students,
		"requirements": requirements,
	})
}

func (sc StudentController) ListAllStudents(ctx *gin.Context) {
	students, err := sc.app.Repository.User.ListAllStudents(ctx, nil)
	if err != nil {
		sc.app.Logger.Errorf("Failed to list all students: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list students", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"students": students})
}

// SetStudentRequirement upserts one completion cell and makes sure the
// student's live clearance row exists.
func (sc StudentController) SetStudentRequirement(ctx *gin.Context) {
	type Request struct {
		StudentID     string `json:"student_id" form:"student_id" binding:"required,strNotEmpty"`
		RequirementID string `json:"requirement_id" form:"requirement_id" binding:"required,strNotEmpty"`
		Completed     *bool  `json:"completed" form:"completed" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	err := sc.app.Repository.StudentRequirement.Set(ctx, nil, body.StudentID, body.RequirementID, *body.Completed)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrStudentNotFound):
			util.ResponseFailed(ctx, http.StatusNotFound, "Student not found", nil, nil)
		case errors.Is(err, repository.ErrRequirementNotFound):
			util.ResponseFailed(ctx, http.StatusNotFound, "Requirement not found", nil, nil)
		default:
			sc.app.Logger.Errorf("Failed to set student requirement: %v", err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to update requirement", util.GenerateErrorMessages(err), nil)
		}
		return
	}

	if _, err := sc.app.Repository.Clearance.EnsureActive(ctx, nil, body.StudentID); err != nil {
		sc.app.Logger.Errorf("Failed to ensure active clearance: %v", err)
	}

	util.ResponseSuccess(ctx, nil)
}

// GetMyRequirements is the student view of the matrix: the whole catalog with
// the student's completion flags, absent cells read as false.
func (sc StudentController) GetMyRequirements(ctx *gin.Context) {
	user, err := sc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	requirements, err := sc.app.Repository.StudentRequirement.GetForStudent(ctx, nil, user.ID)
	if err != nil {
		sc.app.Logger.Errorf("Failed to get requirements for student %s: %v", user.ID, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get requirements", util.GenerateErrorMessages(err), nil)
		return
	}

	submitted, err := sc.clearanceSubmitted(ctx, user.ID)
	if err != nil {
		sc.app.Logger.Errorf("Failed to get clearance status for student %s: %v", user.ID, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get clearance status", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"requirements":        requirements,
		"clearance_submitted": submitted,
	})
}

// GetMyClearance returns the student's archival state: the latest snapshot if
// one exists.
func (sc StudentController) GetMyClearance(ctx *gin.Context) {
	user, err := sc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	snapshot, err := sc.app.Repository.Clearance.GetLatestSubmittedByStudent(ctx, nil, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseSuccess(ctx, gin.H{"clearance_submitted": false})
			return
		}

		sc.app.Logger.Errorf("Failed to get clearance for student %s: %v", user.ID, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get clearance", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"clearance_submitted":    true,
		"clearance_id":           snapshot.ID,
		"completed_requirements": snapshot.CompletedRequirements,
		"signature_template":     snapshot.SignatureTemplate,
		"submitted_date":         snapshot.FormatSubmittedAt(),
	})
}

func (sc StudentController) clearanceSubmitted(ctx *gin.Context, studentId string) (bool, error) {
	active, err := sc.app.Repository.Clearance.GetActiveByStudent(ctx, nil, studentId)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err == nil && active.Submitted {
		return true, nil
	}

	_, err = sc.app.Repository.Clearance.GetLatestSubmittedByStudent(ctx, nil, studentId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
