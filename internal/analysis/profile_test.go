package analysis

import (
	"reflect"
	"testing"
)

func TestResolveProfile_AllHorizons(t *testing.T) {
	for _, tag := range Horizons() {
		p := ResolveProfile(tag)
		if p.Tag != tag {
			t.Errorf("ResolveProfile(%q) 返回了 %q 的配置", tag, p.Tag)
		}
		// 快慢参数关系是所有分类规则的前提
		if p.MACDFast >= p.MACDSlow {
			t.Errorf("%s: MACD快线周期 %d 应小于慢线周期 %d", tag, p.MACDFast, p.MACDSlow)
		}
		if p.EMAFast >= p.EMASlow {
			t.Errorf("%s: EMA快线周期 %d 应小于慢线周期 %d", tag, p.EMAFast, p.EMASlow)
		}
		if p.MACDSignal <= 0 || p.RSILength <= 0 {
			t.Errorf("%s: 周期参数必须为正: signal=%d rsi=%d", tag, p.MACDSignal, p.RSILength)
		}
		if p.Desc == "" {
			t.Errorf("%s: 缺少策略描述", tag)
		}
	}
}

func TestResolveProfile_UnknownFallsBackToMid(t *testing.T) {
	mid := ResolveProfile("mid")
	for _, tag := range []string{"unknown", "", "SHORT", "weekly"} {
		got := ResolveProfile(tag)
		if !reflect.DeepEqual(got, mid) {
			t.Errorf("ResolveProfile(%q) = %+v, 应回退到 mid 配置", tag, got)
		}
	}
}

func TestResolveProfile_CanonicalValues(t *testing.T) {
	cases := []struct {
		tag                    string
		fast, slow, signal     int
		rsi, emaFast, emaSlow  int
		desc                   string
	}{
		{"short", 6, 13, 4, 6, 5, 10, "Aggressive/Short-term"},
		{"mid", 12, 26, 9, 14, 20, 60, "Standard/Swing-trade"},
		{"long", 24, 52, 18, 21, 60, 250, "Conservative/Long-term"},
	}
	for _, c := range cases {
		p := ResolveProfile(c.tag)
		if p.MACDFast != c.fast || p.MACDSlow != c.slow || p.MACDSignal != c.signal {
			t.Errorf("%s: MACD参数 = (%d,%d,%d), 期望 (%d,%d,%d)",
				c.tag, p.MACDFast, p.MACDSlow, p.MACDSignal, c.fast, c.slow, c.signal)
		}
		if p.RSILength != c.rsi {
			t.Errorf("%s: RSI周期 = %d, 期望 %d", c.tag, p.RSILength, c.rsi)
		}
		if p.EMAFast != c.emaFast || p.EMASlow != c.emaSlow {
			t.Errorf("%s: EMA周期 = (%d,%d), 期望 (%d,%d)",
				c.tag, p.EMAFast, p.EMASlow, c.emaFast, c.emaSlow)
		}
		if p.Desc != c.desc {
			t.Errorf("%s: 描述 = %q, 期望 %q", c.tag, p.Desc, c.desc)
		}
	}
}
