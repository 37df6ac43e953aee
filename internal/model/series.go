package model

import "sort"

// PriceSeries 已清洗的日线序列：日期严格升序、无重复、成交量大于0。
// 指标计算只读这份数据，不会在原地修改。
type PriceSeries []KlineData

// NewPriceSeries 从原始K线构建干净的序列。
// 成交量为0的行视为停牌日剔除，日期重复时保留后出现的一条。
func NewPriceSeries(bars []KlineData) PriceSeries {
	byDate := make(map[string]KlineData, len(bars))
	for _, b := range bars {
		if b.Volume <= 0 {
			continue
		}
		byDate[b.Date] = b
	}

	series := make(PriceSeries, 0, len(byDate))
	for _, b := range byDate {
		series = append(series, b)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})
	return series
}

// Closes 提取收盘价序列
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

// Last 最后一个交易日
func (s PriceSeries) Last() KlineData {
	return s[len(s)-1]
}
