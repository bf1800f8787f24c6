package controller

import (
	"errors"
	"net/http"

	"github.com/kimhour/StudentClearance/internal/auth"
	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/model"
	"github.com/kimhour/StudentClearance/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	*baseController
}

func (ac AuthController) Login(ctx *gin.Context) {
	type Request struct {
		Username string `json:"username" form:"username" binding:"required,strNotEmpty"`
		Password string `json:"password" form:"password" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := ac.app.Repository.User.GetByUsername(ctx, nil, body.Username)
	if err != nil || !util.ComparePassword(user.Password, body.Password) {
		ac.app.Logger.Debugf("Failed login attempt for username: %s", body.Username)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid credentials", nil, nil)
		return
	}

	payload := auth.JWTPayload{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	}

	refreshToken, accessToken, err := ac.app.JWTService.GenerateRefreshAndAccessToken(payload)
	if err != nil {
		ac.app.Logger.Errorf("Failed to generate tokens: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to login", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user":          payload,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Register creates a student account. The student number doubles as username
// and initial password.
func (ac AuthController) Register(ctx *gin.Context) {
	type Request struct {
		StudentNumber string `json:"student_number" form:"student_number" binding:"required,strNotEmpty"`
		Name          string `json:"name" form:"name" binding:"required,strNotEmpty"`
		Course        string `json:"course" form:"course" binding:"required"`
		Year          int    `json:"year" form:"year" binding:"required,gte=1,lte=6"`
		Major         string `json:"major" form:"major"`
		Section       string `json:"section" form:"section" binding:"required"`
		Email         string `json:"email" form:"email"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	hash, err := util.HashPassword(body.StudentNumber)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to register", util.GenerateErrorMessages(err), nil)
		return
	}

	student, err := ac.app.Repository.User.RegisterStudent(ctx, nil, model.User{
		Username: body.StudentNumber,
		Password: hash,
		Name:     body.Name,
		Role:     constant.UserRoleStudent,
		Course:   body.Course,
		Year:     body.Year,
		Major:    body.Major,
		Section:  body.Section,
		Email:    body.Email,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Student number already registered", nil, nil)
			return
		}

		ac.app.Logger.Errorf("Failed to register student: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to register", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user": gin.H{
			"id":       student.ID,
			"username": student.Username,
			"name":     student.Name,
		},
	})
}

func (ac AuthController) RefreshToken(ctx *gin.Context) {
	type Request struct {
		RefreshToken string `json:"refresh_token" form:"refresh_token" binding:"required"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	claims, err := ac.app.JWTService.VerifyJwtToken(body.RefreshToken)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid refresh token", util.GenerateErrorMessages(err), nil)
		return
	}

	if claims.Type != constant.JWT_TYPE_REFRESH {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid refresh token type", nil, nil)
		return
	}

	refreshToken, accessToken, err := ac.app.JWTService.GenerateRefreshAndAccessToken(claims.User)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to refresh token", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (ac AuthController) Me(ctx *gin.Context) {
	user, err := ac.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{"user": user})
}
