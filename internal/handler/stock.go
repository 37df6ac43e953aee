package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/analysis"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/stockdata"
)

// GetStocks 按关键词搜索股票列表
func GetStocks(c *gin.Context) {
	keyword := c.Query("keyword")

	stocks, err := stockdata.SearchStocks(keyword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取股票列表失败: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stocks,
	})
}

// GetKline 获取K线数据
func GetKline(c *gin.Context) {
	code := c.Param("code")
	period := c.DefaultQuery("period", "daily")

	kline, err := stockdata.GetKline(code, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, kline)
}

// GetIndicators 按周期风格计算并返回技术面摘要
func GetIndicators(c *gin.Context) {
	code := c.Param("code")
	horizon := c.DefaultQuery("horizon", analysis.DefaultHorizon)

	bars, _, err := stockdata.GetPriceSeries(code, "daily")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	_, summary, err := analysis.Analyze(bars, horizon)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetNews 获取股票新闻
func GetNews(c *gin.Context) {
	code := c.Param("code")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	news, err := stockdata.GetStockNews(code, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": news,
	})
}
