package controller

import (
	"errors"

	appcontext "github.com/kimhour/StudentClearance/internal/app_context"
	"github.com/kimhour/StudentClearance/internal/auth"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index       *IndexController
	Auth        *AuthController
	Requirement *RequirementController
	Student     *StudentController
	Clearance   *ClearanceController
	Signature   *SignatureController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:       &IndexController{baseController: bc},
		Auth:        &AuthController{baseController: bc},
		Requirement: &RequirementController{baseController: bc},
		Student:     &StudentController{baseController: bc},
		Clearance:   &ClearanceController{baseController: bc},
		Signature:   &SignatureController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	payload, ok := user.(auth.JWTPayload)
	if !ok {
		return nil, errors.New("user in context has unexpected type")
	}

	return &payload, nil
}
