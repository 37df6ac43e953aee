package model

// AdviseRequest 投资建议请求
type AdviseRequest struct {
	StockCode string `json:"stock_code" binding:"required"`
	Horizon   string `json:"horizon"`  // short, mid, long，缺省为 mid
	Holdings  string `json:"holdings"` // 持仓描述，空仓可留空
}

// AnalysisSummary 技术面摘要。
// SummaryText 是固定模板的多行文本，直接嵌入LLM提示词；
// 标量字段供前端指标卡和历史记录独立使用。
type AnalysisSummary struct {
	Date        string  `json:"date"`
	Price       float64 `json:"price"`
	Change      float64 `json:"change"`     // 较前一交易日涨跌额
	PctChange   float64 `json:"pct_change"` // 较前一交易日涨跌幅(%)
	RSI         float64 `json:"rsi"`
	RSIStatus   string  `json:"rsi_status"`
	MACDHist    float64 `json:"macd_hist"`
	Momentum    string  `json:"momentum"`
	EMAFast     float64 `json:"ema_fast"`
	EMASlow     float64 `json:"ema_slow"`
	Trend       string  `json:"trend"`
	Volume      float64 `json:"volume"`
	SummaryText string  `json:"summary_text"`
}

// AdviseResponse 投资建议响应
type AdviseResponse struct {
	StockCode   string          `json:"stock_code"`
	StockName   string          `json:"stock_name"`
	Horizon     string          `json:"horizon"`
	HorizonDesc string          `json:"horizon_desc"`
	Summary     AnalysisSummary `json:"summary"`
	Advice      string          `json:"advice"`
	News        []NewsItem      `json:"news"`
}
