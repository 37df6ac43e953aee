package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

// makeSeries 按给定收盘价构造连续交易日序列，成交量固定为100万
func makeSeries(closes []float64) model.PriceSeries {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make(model.PriceSeries, len(closes))
	for i, c := range closes {
		bars[i] = model.KlineData{
			Date:   base.AddDate(0, 0, i).Format("2006-01-02"),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000000,
		}
	}
	return bars
}

// linearCloses 从 from 到 to 线性递增的 n 个收盘价，首尾取值精确
func linearCloses(n int, from, to float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = from + (to-from)*float64(i)/float64(n-1)
	}
	return closes
}

func constCloses(n int, v float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = v
	}
	return closes
}

func TestComputeIndicators_EmptySeries(t *testing.T) {
	if _, err := ComputeIndicators(nil, ResolveProfile("mid")); err == nil {
		t.Fatal("空序列应返回错误")
	}
}

func TestComputeIndicators_ColumnsAligned(t *testing.T) {
	bars := makeSeries(linearCloses(120, 100, 160))
	frame, err := ComputeIndicators(bars, ResolveProfile("mid"))
	if err != nil {
		t.Fatalf("计算指标失败: %v", err)
	}

	n := frame.Len()
	for name, col := range map[string][]float64{
		"MACD": frame.MACD, "MACDSignal": frame.MACDSignal, "MACDHist": frame.MACDHist,
		"RSI": frame.RSI, "EMAFast": frame.EMAFast, "EMASlow": frame.EMASlow,
	} {
		if len(col) != n {
			t.Errorf("%s 列长度 %d 与K线行数 %d 不一致", name, len(col), n)
		}
	}
}

func TestEMASeries_SeedAndLeadingNaN(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50}
	ema := emaSeries(data, 3)

	// 窗口未满足的前导行必须是NaN而不是0
	for i := 0; i < 2; i++ {
		if !math.IsNaN(ema[i]) {
			t.Errorf("ema[%d] = %v, 应为NaN", i, ema[i])
		}
	}
	// 首值为前3个数据的SMA
	if math.Abs(ema[2]-20) > 1e-9 {
		t.Errorf("EMA种子 = %v, 期望 20", ema[2])
	}
	// 之后按 alpha=2/(3+1)=0.5 递推: 0.5*40+0.5*20=30, 0.5*50+0.5*30=40
	if math.Abs(ema[3]-30) > 1e-9 || math.Abs(ema[4]-40) > 1e-9 {
		t.Errorf("EMA递推 = %v %v, 期望 30 40", ema[3], ema[4])
	}
}

func TestEMASeries_TooShort(t *testing.T) {
	ema := emaSeries([]float64{10, 20}, 5)
	for i, v := range ema {
		if !math.IsNaN(v) {
			t.Errorf("数据不足时 ema[%d] = %v, 应全为NaN", i, v)
		}
	}
}

func TestMACDHist_EqualsLineMinusSignal(t *testing.T) {
	bars := makeSeries(linearCloses(150, 100, 130))
	frame, err := ComputeIndicators(bars, ResolveProfile("mid"))
	if err != nil {
		t.Fatalf("计算指标失败: %v", err)
	}

	checked := 0
	for i := 0; i < frame.Len(); i++ {
		if math.IsNaN(frame.MACD[i]) || math.IsNaN(frame.MACDSignal[i]) {
			continue
		}
		// 柱状图必须精确等于 DIF-DEA，不允许近似
		if frame.MACDHist[i] != frame.MACD[i]-frame.MACDSignal[i] {
			t.Errorf("行%d: hist=%v, DIF-DEA=%v", i, frame.MACDHist[i], frame.MACD[i]-frame.MACDSignal[i])
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("没有任何行同时有DIF和DEA")
	}
}

func TestRSI_BoundsAndMonotoneRise(t *testing.T) {
	frame, err := ComputeIndicators(makeSeries(linearCloses(80, 100, 180)), ResolveProfile("mid"))
	if err != nil {
		t.Fatalf("计算指标失败: %v", err)
	}

	last := frame.Len() - 1
	for i, v := range frame.RSI {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("行%d: RSI=%v 超出[0,100]", i, v)
		}
	}
	// 单边上涨时平均跌幅为0，RSI应到达100
	if frame.RSI[last] != 100 {
		t.Errorf("单边上涨的RSI = %v, 期望 100", frame.RSI[last])
	}
}

func TestRSI_FlatSeriesUndefined(t *testing.T) {
	frame, err := ComputeIndicators(makeSeries(constCloses(60, 50)), ResolveProfile("mid"))
	if err != nil {
		t.Fatalf("计算指标失败: %v", err)
	}
	// 完全无波动时RSI未定义，由读取方代入中性默认值
	if !math.IsNaN(frame.RSI[frame.Len()-1]) {
		t.Errorf("无波动序列的RSI = %v, 应为NaN", frame.RSI[frame.Len()-1])
	}
}

func TestComputeIndicators_TwoRows(t *testing.T) {
	frame, err := ComputeIndicators(makeSeries([]float64{100, 101}), ResolveProfile("mid"))
	if err != nil {
		t.Fatalf("两行序列不应报错: %v", err)
	}
	last := frame.Len() - 1
	for name, col := range map[string][]float64{
		"RSI": frame.RSI, "MACDHist": frame.MACDHist,
		"EMAFast": frame.EMAFast, "EMASlow": frame.EMASlow,
	} {
		if !math.IsNaN(col[last]) {
			t.Errorf("两行序列的 %s = %v, 窗口未满足应为NaN", name, col[last])
		}
	}
}

func TestComputeIndicators_HorizonSwitchRecomputes(t *testing.T) {
	bars := makeSeries(linearCloses(300, 100, 200))

	short, err := ComputeIndicators(bars, ResolveProfile("short"))
	if err != nil {
		t.Fatalf("short计算失败: %v", err)
	}
	long, err := ComputeIndicators(bars, ResolveProfile("long"))
	if err != nil {
		t.Fatalf("long计算失败: %v", err)
	}

	last := len(bars) - 1
	if short.EMAFast[last] == long.EMAFast[last] {
		t.Error("短线与长线的快线EMA不应相同")
	}
	if short.EMASlow[last] == long.EMASlow[last] {
		t.Error("短线与长线的慢线EMA不应相同")
	}
	// 原始K线不能被计算过程改写
	for i, b := range bars {
		if b.Close != 100+100.0*float64(i)/299.0 {
			t.Fatalf("行%d: 原始收盘价被修改为 %v", i, b.Close)
		}
	}
}
