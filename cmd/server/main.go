package main

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/advisor"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/cache"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/config"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/handler"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/history"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/service"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/stockdata"
)

func init() {
	// 手动加载 .env 文件
	file, err := os.Open(".env")
	if err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			os.Setenv(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
		}
	}
}

func main() {
	cfg := config.Load()

	// Redis 可选，连不上时回退到进程内缓存
	if err := cache.InitRedis(cfg.RedisAddr); err != nil {
		log.Printf("Redis 不可用，使用进程内缓存: %v", err)
	} else {
		provider, err := cache.NewProvider("advisor")
		if err != nil {
			log.Printf("创建 Redis 缓存失败，使用进程内缓存: %v", err)
		} else {
			stockdata.SetCacheProvider(provider)
		}
	}

	// 历史库
	store, err := history.Open(cfg.HistoryDBPath)
	if err != nil {
		log.Fatalf("打开历史库失败: %v", err)
	}
	defer store.Close()

	llm := advisor.NewClient(cfg.DashScopeAPIKey, cfg.LLMModel, advisor.NewPromptBuilder(cfg.PromptLang))
	service.Setup(llm, store, cfg.NewsLimit)

	r := gin.Default()

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// 注册路由
	api := r.Group("/api")
	{
		// 股票相关
		api.GET("/stocks", handler.GetStocks)
		api.GET("/stocks/:code/kline", handler.GetKline)
		api.GET("/stocks/:code/indicators", handler.GetIndicators)
		api.GET("/stocks/:code/news", handler.GetNews)

		// 咨询相关
		api.POST("/advise", handler.Advise)
		api.GET("/history", handler.GetHistory)
	}

	log.Printf("服务启动在端口 %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}
