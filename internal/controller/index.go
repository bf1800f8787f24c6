package controller

import (
	"github.com/kimhour/StudentClearance/internal/util"
	"github.com/gin-gonic/gin"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"service": "student-clearance-api",
	})
}
