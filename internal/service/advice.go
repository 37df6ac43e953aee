package service

import (
	"fmt"
	"log"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/advisor"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/analysis"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/history"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/stockdata"
)

var (
	llmClient    *advisor.Client
	historyStore *history.Store
	newsLimit    = 5
)

// Setup 注入服务依赖，启动时调用一次
func Setup(client *advisor.Client, store *history.Store, limit int) {
	llmClient = client
	historyStore = store
	if limit > 0 {
		newsLimit = limit
	}
}

// Advise 完整咨询流程：行情 -> 指标 -> 新闻 -> LLM建议 -> 落库
func Advise(req model.AdviseRequest) (*model.AdviseResponse, error) {
	code := stockdata.SanitizeStockCode(req.StockCode)

	// 1. 获取日K并清洗为有效交易序列
	bars, stockName, err := stockdata.GetPriceSeries(code, "daily")
	if err != nil {
		return nil, err
	}

	// 2. 计算指标并生成摘要。
	// 周期配置以指标实际使用的 frame.Profile 为准，不单独解析一遍
	frame, summary, err := analysis.Analyze(bars, req.Horizon)
	if err != nil {
		return nil, fmt.Errorf("分析 %s 失败: %v", code, err)
	}
	profile := frame.Profile

	// 3. 获取新闻，失败不阻断流程
	news, err := stockdata.GetStockNews(code, newsLimit)
	if err != nil {
		log.Printf("[Service] 获取 %s 新闻失败: %v", code, err)
		news = nil
	}

	// 4. 生成交易建议
	advice, err := llmClient.Advise(advisor.PromptInput{
		StockCode:   code,
		StockName:   stockName,
		Horizon:     profile.Tag,
		HorizonDesc: profile.Desc,
		Holdings:    req.Holdings,
		Summary:     *summary,
		NewsDigest:  stockdata.FormatNewsDigest(news),
	})
	if err != nil {
		return nil, fmt.Errorf("生成建议失败: %v", err)
	}

	// 5. 落库，失败只记日志
	if historyStore != nil {
		if _, err := historyStore.Save(code, stockName, profile.Tag, *summary, advice); err != nil {
			log.Printf("[Service] 保存咨询记录失败: %v", err)
		}
	}

	return &model.AdviseResponse{
		StockCode:   code,
		StockName:   stockName,
		Horizon:     profile.Tag,
		HorizonDesc: profile.Desc,
		Summary:     *summary,
		Advice:      advice,
		News:        news,
	}, nil
}

// History 查询咨询记录
func History(code string, limit int) ([]history.Record, error) {
	if historyStore == nil {
		return nil, fmt.Errorf("历史库未初始化")
	}
	return historyStore.List(code, limit)
}
