package route

import (
	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/controller"
	"github.com/kimhour/StudentClearance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Clearances registers the clearance state machine endpoints. The CSV export
// lives at the root, outside /api, so browsers can download it with a plain
// link.
func Clearances(api *gin.RouterGroup, root *gin.RouterGroup, cc *controller.ClearanceController, middleware *middleware.Middleware) {
	admin := middleware.RequireRoles(constant.UserRoleAdmin)

	api.POST("/submit-clearance", middleware.AuthMiddleware, admin, cc.SubmitClearance)
	api.POST("/undo-submission", middleware.AuthMiddleware, admin, cc.UndoSubmission)
	api.POST("/clear-all-requirements", middleware.AuthMiddleware, admin, cc.ClearAllRequirements)
	api.GET("/submitted-clearances", middleware.AuthMiddleware, admin, cc.ListSubmittedClearances)
	api.GET("/download-clearance/:clearanceId", middleware.AuthMiddleware, cc.DownloadClearance)

	root.GET("/download-all-clearances", middleware.AuthMiddleware, admin, cc.DownloadAllClearancesCsv)
}
