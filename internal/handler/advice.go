package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/service"
)

// Advise 生成投资建议
func Advise(c *gin.Context) {
	var req model.AdviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	resp, err := service.Advise(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetHistory 获取咨询历史
func GetHistory(c *gin.Context) {
	code := c.Query("code")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}

	records, err := service.History(code, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": records,
	})
}
