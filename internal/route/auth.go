package route

import (
	"github.com/kimhour/StudentClearance/internal/controller"
	"github.com/kimhour/StudentClearance/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Auth(r *gin.RouterGroup, ac *controller.AuthController, middleware *middleware.Middleware) {
	r.POST("/login", ac.Login)
	r.POST("/register", ac.Register)
	r.POST("/refresh-token", ac.RefreshToken)
	r.GET("/me", middleware.AuthMiddleware, ac.Me)
}
