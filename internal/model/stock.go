package model

// Stock 股票基本信息
type Stock struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"` // SH: 上海, SZ: 深圳
}

// KlineData K线数据
type KlineData struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`
	Amount float64 `json:"amount"`
}

// KlineResponse K线响应
type KlineResponse struct {
	Code   string      `json:"code"`
	Name   string      `json:"name"`
	Period string      `json:"period"`
	Data   []KlineData `json:"data"`
}

// NewsItem 新闻/公告条目
type NewsItem struct {
	Title  string `json:"title"`
	Time   string `json:"time"`
	Source string `json:"source"`
}
