package analysis

import (
	"fmt"
	"math"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

// IndicatorFrame 原始序列加上按参数配置算出的指标列。
// 所有指标列与K线逐行对齐，回看窗口未满足的前导行为 NaN（不是0），
// 读取时由 Summarize 代入默认值。
type IndicatorFrame struct {
	Bars    model.PriceSeries
	Profile HorizonProfile

	MACD       []float64 // DIF
	MACDSignal []float64 // DEA
	MACDHist   []float64 // DIF - DEA
	RSI        []float64
	EMAFast    []float64
	EMASlow    []float64
}

// Len 行数
func (f *IndicatorFrame) Len() int {
	return len(f.Bars)
}

// ComputeIndicators 在输入序列上计算全部指标列，返回新的 IndicatorFrame。
// 输入序列只读，多个周期在同一份数据上重算互不影响。
func ComputeIndicators(bars model.PriceSeries, profile HorizonProfile) (*IndicatorFrame, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("K线数据为空")
	}

	closes := bars.Closes()
	macd, signal, hist := macdSeries(closes, profile.MACDFast, profile.MACDSlow, profile.MACDSignal)

	return &IndicatorFrame{
		Bars:       bars,
		Profile:    profile,
		MACD:       macd,
		MACDSignal: signal,
		MACDHist:   hist,
		RSI:        rsiSeries(closes, profile.RSILength),
		EMAFast:    emaSeries(closes, profile.EMAFast),
		EMASlow:    emaSeries(closes, profile.EMASlow),
	}, nil
}

// emaSeries 计算指数移动平均序列。
// 首个EMA用前period个数据的SMA做种子，平滑系数 2/(period+1)。
func emaSeries(data []float64, period int) []float64 {
	ema := nanSlice(len(data))
	if period <= 0 || len(data) < period {
		return ema
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	ema[period-1] = sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(data); i++ {
		ema[i] = (data[i]-ema[i-1])*multiplier + ema[i-1]
	}
	return ema
}

// macdSeries 计算MACD三条序列。
// DIF = EMA(fast) - EMA(slow)，DEA = EMA(DIF, signal)，柱状图 = DIF - DEA。
// DEA在DIF的有效段上计算，再对齐回原始行号。
func macdSeries(closes []float64, fast, slow, signalLen int) (macd, signal, hist []float64) {
	n := len(closes)
	macd, signal, hist = nanSlice(n), nanSlice(n), nanSlice(n)
	if n < slow {
		return
	}

	emaFast := emaSeries(closes, fast)
	emaSlow := emaSeries(closes, slow)

	validStart := slow - 1
	dif := make([]float64, 0, n-validStart)
	for i := validStart; i < n; i++ {
		macd[i] = emaFast[i] - emaSlow[i]
		dif = append(dif, macd[i])
	}

	dea := emaSeries(dif, signalLen)
	for i, v := range dea {
		if math.IsNaN(v) {
			continue
		}
		idx := validStart + i
		signal[idx] = v
		hist[idx] = macd[idx] - v
	}
	return
}

// rsiSeries 计算Wilder RSI序列。
// 初始均值取前period个涨跌幅的简单平均，之后以 alpha=1/period 平滑。
func rsiSeries(closes []float64, period int) []float64 {
	n := len(closes)
	rsi := nanSlice(n)
	if period <= 0 || n < period+1 {
		return rsi
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	rsi[period] = rsiValue(avgGain, avgLoss)

	alpha := 1.0 / float64(period)
	for i := period + 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = alpha*gain + (1-alpha)*avgGain
		avgLoss = alpha*loss + (1-alpha)*avgLoss
		rsi[i] = rsiValue(avgGain, avgLoss)
	}
	return rsi
}

// rsiValue 由平均涨跌幅得到RSI。
// 只涨不跌时为100；完全无波动时视为未定义，读取时回落到中性值。
func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return math.NaN()
		}
		return 100
	}
	rs := avgGain / avgLoss
	v := 100 - 100/(1+rs)
	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}
	return v
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
