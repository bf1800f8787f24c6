package route

import (
	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/controller"
	"github.com/kimhour/StudentClearance/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Signatures(r *gin.RouterGroup, sc *controller.SignatureController, middleware *middleware.Middleware) {
	r.POST("/signature-template",
		middleware.AuthMiddleware,
		middleware.RequireRoles(constant.UserRoleAdmin),
		sc.UploadSignatureTemplate,
	)
}
