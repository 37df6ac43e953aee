package stockdata

import (
	"testing"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

func TestSanitizeStockCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"600519", "600519"},
		{"sh600519", "600519"},
		{" 600519 ", "600519"},
		{"sh.600519", "600519"},
		{"1.600519", "600519"}, // 多段数字拼接后取后6位
		{"abc", "abc"},
	}
	for _, c := range cases {
		if got := SanitizeStockCode(c.in); got != c.want {
			t.Errorf("SanitizeStockCode(%q) = %q, 期望 %q", c.in, got, c.want)
		}
	}
}

func TestFormatNewsDigest(t *testing.T) {
	news := []model.NewsItem{
		{Title: "年度报告", Time: "2024-03-01", Source: "东方财富"},
		{Title: "股东大会决议公告", Time: "2024-03-05", Source: "东方财富"},
	}
	digest := FormatNewsDigest(news)
	want := "- [2024-03-01] 年度报告\n- [2024-03-05] 股东大会决议公告"
	if digest != want {
		t.Errorf("新闻摘要 = %q, 期望 %q", digest, want)
	}

	if got := FormatNewsDigest(nil); got != "暂无新闻" {
		t.Errorf("空新闻摘要 = %q", got)
	}
}

func TestExtractJSONPBody(t *testing.T) {
	body := []byte(`var__sh600519_240(([{"day":"2024-01-02"}]))`)
	got := string(extractJSONPBody(body))
	if got != `([{"day":"2024-01-02"}])` {
		t.Errorf("JSONP解包 = %q", got)
	}

	plain := []byte(`{"a":1}`)
	if string(extractJSONPBody(plain)) != `{"a":1}` {
		t.Error("无括号时应原样返回")
	}
}

func TestInMemoryCacheProvider(t *testing.T) {
	p := NewInMemoryCacheProvider()

	var missed string
	if err := p.Get("absent", &missed); err == nil {
		t.Error("未写入的key应返回错误")
	}

	if err := p.Set("k", model.Stock{Code: "600519", Name: "贵州茅台"}, 0); err != nil {
		t.Fatalf("Set失败: %v", err)
	}
	var got model.Stock
	if err := p.Get("k", &got); err != nil {
		t.Fatalf("Get失败: %v", err)
	}
	if got.Code != "600519" || got.Name != "贵州茅台" {
		t.Errorf("缓存往返结果 = %+v", got)
	}
}
