package model

import "testing"

func TestNewPriceSeries_FilterSortDedupe(t *testing.T) {
	bars := []KlineData{
		{Date: "2024-01-04", Close: 12, Volume: 300},
		{Date: "2024-01-02", Close: 10, Volume: 100},
		{Date: "2024-01-03", Close: 11, Volume: 0}, // 停牌日，应剔除
		{Date: "2024-01-05", Close: 13, Volume: 400},
		{Date: "2024-01-02", Close: 10.5, Volume: 150}, // 重复日期，保留后出现的
	}

	series := NewPriceSeries(bars)

	if len(series) != 3 {
		t.Fatalf("清洗后行数 = %d, 期望 3", len(series))
	}
	wantDates := []string{"2024-01-02", "2024-01-04", "2024-01-05"}
	for i, d := range wantDates {
		if series[i].Date != d {
			t.Errorf("第%d行日期 = %s, 期望 %s", i, series[i].Date, d)
		}
	}
	if series[0].Close != 10.5 {
		t.Errorf("重复日期应保留后出现的一条, Close = %v", series[0].Close)
	}
	if series.Last().Date != "2024-01-05" {
		t.Errorf("Last() = %s", series.Last().Date)
	}
}

func TestPriceSeries_Closes(t *testing.T) {
	series := NewPriceSeries([]KlineData{
		{Date: "2024-01-02", Close: 10, Volume: 1},
		{Date: "2024-01-03", Close: 11, Volume: 1},
	})
	closes := series.Closes()
	if len(closes) != 2 || closes[0] != 10 || closes[1] != 11 {
		t.Errorf("Closes() = %v", closes)
	}
}

func TestNewPriceSeries_AllSuspended(t *testing.T) {
	series := NewPriceSeries([]KlineData{
		{Date: "2024-01-02", Close: 10, Volume: 0},
	})
	if len(series) != 0 {
		t.Errorf("全部停牌时应返回空序列, 实际 %d 行", len(series))
	}
}
