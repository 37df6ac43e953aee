package config

import (
	"os"
	"strconv"
)

// AppConfig 服务配置，全部来自环境变量
type AppConfig struct {
	Port      string
	RedisAddr string

	// LLM配置
	DashScopeAPIKey string
	LLMModel        string
	PromptLang      string // en 或 zh，决定提示词语言

	// 建议历史库
	HistoryDBPath string

	// 每次分析附带的新闻条数
	NewsLimit int
}

// Load 读取环境变量生成配置
func Load() *AppConfig {
	return &AppConfig{
		Port:            getEnvString("PORT", "8080"),
		RedisAddr:       getEnvString("REDIS_ADDR", ""),
		DashScopeAPIKey: getEnvString("DASHSCOPE_API_KEY", ""),
		LLMModel:        getEnvString("LLM_MODEL", "qwen-plus"),
		PromptLang:      getEnvString("LLM_PROMPT_LANG", "zh"),
		HistoryDBPath:   getEnvString("HISTORY_DB_PATH", "./data/advisor_history.db"),
		NewsLimit:       getEnvInt("NEWS_LIMIT", 5),
	}
}

// 辅助函数
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
