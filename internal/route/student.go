package route

import (
	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/controller"
	"github.com/kimhour/StudentClearance/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Students(r *gin.RouterGroup, sc *controller.StudentController, middleware *middleware.Middleware) {
	admin := middleware.RequireRoles(constant.UserRoleAdmin)
	student := middleware.RequireRoles(constant.UserRoleStudent)

	r.GET("/students", middleware.AuthMiddleware, admin, sc.ListStudents)
	r.GET("/all-students", middleware.AuthMiddleware, admin, sc.ListAllStudents)
	r.POST("/student-requirement", middleware.AuthMiddleware, admin, sc.SetStudentRequirement)

	r.GET("/student-requirements", middleware.AuthMiddleware, student, sc.GetMyRequirements)
	r.GET("/student-clearance", middleware.AuthMiddleware, student, sc.GetMyClearance)
}
