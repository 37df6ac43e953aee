package analysis

import (
	"fmt"
	"math"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

// 分类标签。文本会原样进入摘要和历史记录，改动会影响做文本校验的消费方。
const (
	TrendStrongUp   = "STRONG UPTREND (Price > Fast > Slow)"
	TrendStrongDown = "STRONG DOWNTREND (Price < Fast < Slow)"
	TrendModerateUp = "MODERATE UPTREND (Above Slow MA)"
	TrendSideways   = "SIDEWAYS"

	MomentumBullish = "BULLISH"
	MomentumBearish = "BEARISH"

	RSIOverbought = "OVERBOUGHT (High Risk)"
	RSIOversold   = "OVERSOLD (Potential Bounce)"
	RSINeutral    = "NEUTRAL"
)

// 指标列尚未就绪时的读取默认值。
// EMA默认0会让极短序列被判成 MODERATE UPTREND 或 SIDEWAYS，
// 这是沿用下来的已知边界行为，不按错误处理。
const (
	defaultRSI  = 50.0
	defaultHist = 0.0
	defaultEMA  = 0.0
)

// Summarize 读取最后一行和倒数第二行，生成结构化摘要与供LLM阅读的多行文本。
// 不足两个交易日视为数据不足直接报错，不伪造摘要。
func Summarize(frame *IndicatorFrame) (*model.AnalysisSummary, error) {
	if frame == nil || frame.Len() < 2 {
		return nil, fmt.Errorf("K线数据不足，至少需要2个交易日")
	}

	last := frame.Len() - 1
	bar := frame.Bars[last]
	prevBar := frame.Bars[last-1]

	price := bar.Close
	rsiVal := valueOr(frame.RSI[last], defaultRSI)
	hist := valueOr(frame.MACDHist[last], defaultHist)
	emaFast := valueOr(frame.EMAFast[last], defaultEMA)
	emaSlow := valueOr(frame.EMASlow[last], defaultEMA)

	trend := classifyTrend(price, emaFast, emaSlow)
	momentum := classifyMomentum(hist)
	rsiStatus := classifyRSI(rsiVal)

	change := price - prevBar.Close
	pctChange := 0.0
	if prevBar.Close != 0 {
		pctChange = change / prevBar.Close * 100
	}

	p := frame.Profile
	summaryText := fmt.Sprintf(
		"--- Technical Analysis (%s) ---\n"+
			"Date: %s\n"+
			"Close Price: %.2f\n"+
			"Trend (EMA): %s\n"+
			"  - EMA(%d): %.2f\n"+
			"  - EMA(%d): %.2f\n"+
			"Momentum (MACD): %s (Hist: %.3f)\n"+
			"Oscillator (RSI): %.2f [%s]\n"+
			"Volume: %.0f",
		p.Desc, bar.Date, price, trend,
		p.EMAFast, emaFast,
		p.EMASlow, emaSlow,
		momentum, hist,
		rsiVal, rsiStatus,
		bar.Volume,
	)

	return &model.AnalysisSummary{
		Date:        bar.Date,
		Price:       price,
		Change:      change,
		PctChange:   pctChange,
		RSI:         rsiVal,
		RSIStatus:   rsiStatus,
		MACDHist:    hist,
		Momentum:    momentum,
		EMAFast:     emaFast,
		EMASlow:     emaSlow,
		Trend:       trend,
		Volume:      bar.Volume,
		SummaryText: summaryText,
	}, nil
}

// Analyze 一次完成参数解析、指标计算和摘要生成
func Analyze(bars model.PriceSeries, horizon string) (*IndicatorFrame, *model.AnalysisSummary, error) {
	profile := ResolveProfile(horizon)
	frame, err := ComputeIndicators(bars, profile)
	if err != nil {
		return nil, nil, err
	}
	summary, err := Summarize(frame)
	if err != nil {
		return nil, nil, err
	}
	return frame, summary, nil
}

// classifyTrend 均线趋势判定，按优先级取首个命中：
// 强多头、强空头、站上慢线的温和多头，否则震荡
func classifyTrend(price, emaFast, emaSlow float64) string {
	switch {
	case price > emaFast && emaFast > emaSlow:
		return TrendStrongUp
	case price < emaFast && emaFast < emaSlow:
		return TrendStrongDown
	case price > emaSlow:
		return TrendModerateUp
	default:
		return TrendSideways
	}
}

// classifyMomentum MACD柱大于0为多头动能，等于0按空头处理
func classifyMomentum(hist float64) string {
	if hist > 0 {
		return MomentumBullish
	}
	return MomentumBearish
}

// classifyRSI 超买超卖判定，阈值70/30
func classifyRSI(rsi float64) string {
	if rsi > 70 {
		return RSIOverbought
	}
	if rsi < 30 {
		return RSIOversold
	}
	return RSINeutral
}

func valueOr(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}
