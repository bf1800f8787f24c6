package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/mailer"
	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/kimhour/StudentClearance/internal/repository"
	"github.com/kimhour/StudentClearance/internal/util"
	"github.com/kimhour/StudentClearance/pkg/clearpdf"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClearanceController struct {
	*baseController

	rendererOnce sync.Once
	renderer     *clearpdf.Renderer
	rendererErr  error
}

// SubmitClearance archives the clearance of one student. Admins submit on a
// student's behalf.
func (cc *ClearanceController) SubmitClearance(ctx *gin.Context) {
	type Request struct {
		StudentID string `json:"student_id" form:"student_id" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	snapshot, err := cc.app.Repository.Clearance.Submit(ctx, body.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrIncomplete):
			util.ResponseFailed(ctx, http.StatusBadRequest, constant.MSG_INCOMPLETE_REQUIREMENTS, nil, nil)
		case errors.Is(err, repository.ErrStudentNotFound):
			util.ResponseFailed(ctx, http.StatusNotFound, "Student not found", nil, nil)
		case errors.Is(err, repository.ErrConflict):
			util.ResponseFailed(ctx, http.StatusConflict, "Clearance state changed, please retry", nil, nil)
		default:
			cc.app.Logger.Errorf("Failed to submit clearance: %v", err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to submit clearance", util.GenerateErrorMessages(err), nil)
		}
		return
	}

	cc.notifySubmitted(body.StudentID, snapshot)

	util.ResponseSuccess(ctx, gin.H{
		"clearance": gin.H{
			"id":               snapshot.ID,
			"reference_number": snapshot.ReferenceNumber,
			"submitted_date":   snapshot.FormatSubmittedAt(),
		},
	})
}

// notifySubmitted emails the student a confirmation. Best effort, a mail
// failure never fails the submission.
func (cc *ClearanceController) notifySubmitted(studentId string, snapshot *model.SubmittedClearance) {
	student, err := cc.app.Repository.User.GetById(context.Background(), nil, studentId)
	if err != nil || student.Email == "" {
		return
	}

	go func() {
		_, err := cc.app.Mailer.Send(mailer.CLEARANCE_SUBMITTED_TEMPLATE, student.Name, student.Email, map[string]any{
			"Name":             snapshot.StudentName,
			"SubmittedAt":      snapshot.FormatSubmittedAt(),
			"RequirementCount": len(snapshot.CompletedRequirements),
			"ReferenceNumber":  snapshot.ReferenceNumber,
		})
		if err != nil {
			cc.app.Logger.Errorf("Failed to send clearance submitted email to %s: %v", student.Email, err)
		}
	}()
}

func (cc *ClearanceController) UndoSubmission(ctx *gin.Context) {
	type Request struct {
		StudentID string `json:"student_id" form:"student_id" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := cc.app.Repository.Clearance.Undo(ctx, nil, body.StudentID); err != nil {
		cc.app.Logger.Errorf("Failed to undo submission: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to undo submission", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (cc *ClearanceController) ClearAllRequirements(ctx *gin.Context) {
	if err := cc.app.Repository.Clearance.ResetAll(ctx, nil); err != nil {
		cc.app.Logger.Errorf("Failed to reset clearance state: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to clear requirements", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (cc *ClearanceController) ListSubmittedClearances(ctx *gin.Context) {
	snapshots, err := cc.app.Repository.Clearance.ListSubmitted(ctx, nil)
	if err != nil {
		cc.app.Logger.Errorf("Failed to list submitted clearances: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list submitted clearances", util.GenerateErrorMessages(err), nil)
		return
	}

	clearances := make([]gin.H, 0, len(snapshots))
	for _, snapshot := range snapshots {
		clearances = append(clearances, gin.H{
			"id":             snapshot.ID,
			"student_name":   snapshot.StudentName,
			"student_number": snapshot.StudentNumber,
			"submitted_date": snapshot.FormatSubmittedAt(),
		})
	}

	util.ResponseSuccess(ctx, gin.H{"clearances": clearances})
}

// DownloadClearance renders the archived snapshot as a certificate PDF.
// Students can only download their own.
func (cc *ClearanceController) DownloadClearance(ctx *gin.Context) {
	clearanceId := ctx.Params.ByName("clearanceId")
	if clearanceId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Clearance id is required", nil, nil)
		return
	}

	user, err := cc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	snapshot, err := cc.app.Repository.Clearance.GetSubmittedById(ctx, nil, clearanceId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Clearance not found", nil, nil)
			return
		}

		cc.app.Logger.Errorf("Failed to get submitted clearance: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get clearance", util.GenerateErrorMessages(err), nil)
		return
	}

	if user.Role != constant.UserRoleAdmin && snapshot.StudentID != user.ID {
		util.ResponseFailed(ctx, http.StatusForbidden, "You are not allowed to download this clearance", nil, nil)
		return
	}

	renderer, err := cc.getRenderer()
	if err != nil {
		cc.app.Logger.Errorf("Failed to initialize certificate renderer: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to render certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	cert := clearpdf.Certificate{
		StudentName:           snapshot.StudentName,
		StudentNumber:         snapshot.StudentNumber,
		ReferenceNumber:       snapshot.ReferenceNumber,
		SubmittedAt:           snapshot.SubmittedAt,
		CompletedRequirements: snapshot.CompletedRequirements,
		VerifyURL:             fmt.Sprintf("%s/api/download-clearance/%s", cc.app.Config.App.BaseURL, snapshot.ID),
	}

	if snapshot.SignatureTemplate != "" {
		sigPath, err := util.DownloadFileFromS3ToTemp(ctx, cc.app.S3, cc.app.Config.Minio.BUCKET, snapshot.SignatureTemplate)
		if err != nil {
			cc.app.Logger.Errorf("Failed to download signature template %s: %v", snapshot.SignatureTemplate, err)
		} else {
			defer os.Remove(sigPath)
			cert.SignatureFilePath = sigPath
		}
	}

	pdfBytes, err := renderer.Render(cert)
	if err != nil {
		cc.app.Logger.Errorf("Failed to render certificate: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to render certificate", util.GenerateErrorMessages(err), nil)
		return
	}

	fileName := fmt.Sprintf("clearance_%s.pdf", snapshot.StudentNumber)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// DownloadAllClearancesCsv exports every archived snapshot joined with its
// student profile. Snapshots whose student row no longer exists are skipped,
// the snapshot itself only denormalizes name and number.
func (cc *ClearanceController) DownloadAllClearancesCsv(ctx *gin.Context) {
	snapshots, err := cc.app.Repository.Clearance.ListSubmitted(ctx, nil)
	if err != nil {
		cc.app.Logger.Errorf("Failed to list submitted clearances: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to export clearances", util.GenerateErrorMessages(err), nil)
		return
	}

	rows := make([]clearpdf.ExportRow, 0, len(snapshots))
	for _, snapshot := range snapshots {
		student, err := cc.app.Repository.User.GetByUsername(ctx, nil, snapshot.StudentNumber)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				cc.app.Logger.Errorf("Failed to load student %s for export: %v", snapshot.StudentNumber, err)
			}
			continue
		}

		rows = append(rows, clearpdf.ExportRow{
			Name:          student.Name,
			StudentNumber: student.Username,
			Course:        student.Course,
			Year:          student.Year,
			Section:       student.Section,
			Major:         student.Major,
			SubmittedDate: snapshot.FormatSubmittedAt(),
		})
	}

	csvBytes, err := clearpdf.WriteClearanceCSV(rows)
	if err != nil {
		cc.app.Logger.Errorf("Failed to write clearance CSV: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to export clearances", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="clearances.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", csvBytes)
}

func (cc *ClearanceController) getRenderer() (*clearpdf.Renderer, error) {
	cc.rendererOnce.Do(func() {
		cfg := clearpdf.NewDefaultConfig()
		if cc.app.Config.App.FontDir != "" {
			cfg.FontDir = cc.app.Config.App.FontDir
		}
		cc.renderer, cc.rendererErr = clearpdf.NewRenderer(cfg)
	})

	return cc.renderer, cc.rendererErr
}
