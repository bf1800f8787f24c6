package route

import (
	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/controller"
	"github.com/kimhour/StudentClearance/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Requirements(r *gin.RouterGroup, rc *controller.RequirementController, middleware *middleware.Middleware) {
	requirements := r.Group("/requirements")
	requirements.Use(middleware.AuthMiddleware)
	{
		requirements.GET("", rc.ListRequirements)
		requirements.POST("", middleware.RequireRoles(constant.UserRoleAdmin), rc.AddRequirement)
		requirements.DELETE("/:requirementId", middleware.RequireRoles(constant.UserRoleAdmin), rc.DeleteRequirement)
	}
}
