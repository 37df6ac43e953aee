package advisor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

func sampleInput() PromptInput {
	return PromptInput{
		StockCode:   "600519",
		StockName:   "贵州茅台",
		Horizon:     "mid",
		HorizonDesc: "Standard/Swing-trade",
		Holdings:    "",
		Summary: model.AnalysisSummary{
			RSI:         55.5,
			MACDHist:    0.123,
			SummaryText: "--- Technical Analysis (MID) ---\nClose Price: 1700.00",
		},
		NewsDigest: "",
	}
}

// 测试语言选择：en 大小写不敏感，其余一律中文
func TestNewPromptBuilder_LanguageSwitch(t *testing.T) {
	if _, ok := NewPromptBuilder("en").(EnglishPromptBuilder); !ok {
		t.Error("lang=en 应返回英文实现")
	}
	if _, ok := NewPromptBuilder("EN").(EnglishPromptBuilder); !ok {
		t.Error("lang=EN 应返回英文实现")
	}
	if _, ok := NewPromptBuilder("zh").(ChinesePromptBuilder); !ok {
		t.Error("lang=zh 应返回中文实现")
	}
	if _, ok := NewPromptBuilder("").(ChinesePromptBuilder); !ok {
		t.Error("缺省应返回中文实现")
	}
}

// 测试英文提示词包含必要区块
func TestEnglishPromptBuilder_Sections(t *testing.T) {
	in := sampleInput()
	prompt := EnglishPromptBuilder{}.Build(in)

	for _, want := range []string{
		"T+1 Rule",
		"--- USER INFO ---",
		"--- MARKET DATA (Real-time) ---",
		"--- YOUR TASK ---",
		"None (Empty Position)", // 空仓时的占位
		"贵州茅台 (600519)",
		"MID",
		in.Summary.SummaryText,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("英文提示词缺少 %q", want)
		}
	}
	if strings.Contains(prompt, "RECENT NEWS") {
		t.Error("无新闻时不应出现新闻区块")
	}
}

// 测试中文提示词包含必要区块
func TestChinesePromptBuilder_Sections(t *testing.T) {
	in := sampleInput()
	in.Holdings = "持有100股，成本1650"
	in.NewsDigest = "- [2024-06-01] 发布年度分红方案"
	prompt := ChinesePromptBuilder{}.Build(in)

	for _, want := range []string{
		"T+1 规则",
		"--- 用户信息 ---",
		"--- 实时市场数据 ---",
		"--- 你的任务 ---",
		"持有100股，成本1650",
		"--- 最新公告/新闻 ---",
		"发布年度分红方案",
		in.Summary.SummaryText,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("中文提示词缺少 %q", want)
		}
	}
}

// 测试无API Key时的备用建议引用指标数值
func TestClient_FallbackAdvice(t *testing.T) {
	c := NewClient("", "", nil)

	in := sampleInput()
	in.Summary.Price = 1700
	in.Summary.Trend = "STRONG UPTREND (Price > Fast > Slow)"
	in.Summary.Momentum = "BULLISH"
	in.Summary.RSIStatus = "NEUTRAL"

	advice, err := c.Advise(in)
	if err != nil {
		t.Fatalf("备用建议不应报错: %v", err)
	}
	for _, want := range []string{"贵州茅台", "600519", "1700.00", "BULLISH", "55.50"} {
		if !strings.Contains(advice, want) {
			t.Errorf("备用建议缺少 %q", want)
		}
	}
	if !strings.Contains(advice, "持有或逢低参与") {
		t.Error("强势上涨且动能看多时应给出偏多表述")
	}
}

// 测试两种DashScope响应格式的解析：旧版 output.text 与 qwen3 的 output.choices
func TestQwenResponse_DecodeBothFormats(t *testing.T) {
	var legacy QwenResponse
	if err := json.Unmarshal([]byte(`{"output":{"text":"建议买入"},"usage":{"total_tokens":10}}`), &legacy); err != nil {
		t.Fatalf("解析旧格式失败: %v", err)
	}
	if legacy.Output.Text != "建议买入" {
		t.Errorf("text = %q, 期望 建议买入", legacy.Output.Text)
	}

	var qwen3 QwenResponse
	if err := json.Unmarshal([]byte(`{"output":{"choices":[{"message":{"role":"assistant","content":"建议持有"}}]}}`), &qwen3); err != nil {
		t.Fatalf("解析choices格式失败: %v", err)
	}
	if len(qwen3.Output.Choices) != 1 {
		t.Fatalf("choices 未解析到: %+v", qwen3.Output)
	}
	if qwen3.Output.Choices[0].Message.Content != "建议持有" {
		t.Errorf("choices内容 = %q, 期望 建议持有", qwen3.Output.Choices[0].Message.Content)
	}
}

func TestClient_FallbackAdvice_Downtrend(t *testing.T) {
	c := NewClient("", "qwen-plus", ChinesePromptBuilder{})

	in := sampleInput()
	in.Summary.Trend = "STRONG DOWNTREND (Price < Fast < Slow)"
	in.Summary.Momentum = "BEARISH"
	in.Summary.RSIStatus = "OVERSOLD (Potential Bounce)"

	advice, err := c.Advise(in)
	if err != nil {
		t.Fatalf("备用建议不应报错: %v", err)
	}
	if !strings.Contains(advice, "观望") {
		t.Error("强势下跌时应提示观望")
	}
	if !strings.Contains(advice, "超卖") {
		t.Error("超卖状态应在建议中体现")
	}
}
