package controller

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/kimhour/StudentClearance/internal/util"
	"github.com/gin-gonic/gin"
)

type SignatureController struct {
	*baseController
}

var allowedSignatureExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadSignatureTemplate stores a new signature image and assigns it to every
// live clearance. Snapshots already archived keep their old template.
func (sc SignatureController) UploadSignatureTemplate(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("signature")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Signature file is required", util.GenerateErrorMessages(err, "signature"), nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedSignatureExts[ext] {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Signature must be a png, jpg, jpeg or gif image", nil, nil)
		return
	}

	info, err := util.UploadFileToS3ByFileHeader(fileHeader, &util.FileUploadOptions{
		DirectoryPath: util.GetSignatureTemplateDirectoryPath(),
		UniquePrefix:  true,
		Bucket:        sc.app.Config.Minio.BUCKET,
		S3:            sc.app.S3,
	})
	if err != nil {
		sc.app.Logger.Errorf("Failed to upload signature template: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to upload signature template", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := sc.app.Repository.Clearance.AssignSignatureTemplate(ctx, nil, info.Key); err != nil {
		sc.app.Logger.Errorf("Failed to assign signature template: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to assign signature template", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"file_path": info.Key})
}
