package controller

import (
	"errors"
	"net/http"

	constant "github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/repository"
	"github.com/kimhour/StudentClearance/internal/util"
	"github.com/gin-gonic/gin"
)

type RequirementController struct {
	*baseController
}

const ErrRequirementIdRequired = "requirement id is required"

func (rc RequirementController) ListRequirements(ctx *gin.Context) {
	requirements, err := rc.app.Repository.Requirement.List(ctx, nil)
	if err != nil {
		rc.app.Logger.Errorf("Failed to list requirements: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to list requirements", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"requirements": requirements})
}

func (rc RequirementController) AddRequirement(ctx *gin.Context) {
	type Request struct {
		Name string `json:"name" form:"name" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	requirement, err := rc.app.Repository.Requirement.Create(ctx, nil, body.Name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyRequirementName):
			util.ResponseFailed(ctx, http.StatusBadRequest, "Requirement name must not be empty", nil, nil)
		case errors.Is(err, repository.ErrDuplicateRequirement):
			util.ResponseFailed(ctx, http.StatusBadRequest, constant.MSG_REQUIREMENT_EXISTS, nil, nil)
		default:
			rc.app.Logger.Errorf("Failed to add requirement: %v", err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to add requirement", util.GenerateErrorMessages(err), nil)
		}
		return
	}

	util.ResponseSuccess(ctx, gin.H{"requirement": requirement})
}

// DeleteRequirement cascades to the completion matrix but never touches
// archived snapshots. Deleting an unknown id succeeds.
func (rc RequirementController) DeleteRequirement(ctx *gin.Context) {
	requirementId := ctx.Params.ByName("requirementId")
	if requirementId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Requirement id is required", util.GenerateErrorMessages(errors.New(ErrRequirementIdRequired), "requirementId"), nil)
		return
	}

	if err := rc.app.Repository.Requirement.Delete(ctx, nil, requirementId); err != nil {
		rc.app.Logger.Errorf("Failed to delete requirement: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to delete requirement", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
