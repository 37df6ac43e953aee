package advisor

import (
	"fmt"
	"strings"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

// PromptInput 构建提示词需要的全部上下文
type PromptInput struct {
	StockCode   string
	StockName   string
	Horizon     string
	HorizonDesc string
	Holdings    string // 用户持仓描述，空仓时为空串
	Summary     model.AnalysisSummary
	NewsDigest  string // 逐行新闻标题，可为空
}

// PromptBuilder 提示词构建策略。
// 换语言或换话术时提供新的实现，不改动调用方。
type PromptBuilder interface {
	Build(in PromptInput) string
}

// NewPromptBuilder 按语言选择提示词实现，缺省中文
func NewPromptBuilder(lang string) PromptBuilder {
	if strings.EqualFold(lang, "en") {
		return EnglishPromptBuilder{}
	}
	return ChinesePromptBuilder{}
}

// EnglishPromptBuilder 英文提示词
type EnglishPromptBuilder struct{}

func (EnglishPromptBuilder) Build(in PromptInput) string {
	holdings := in.Holdings
	if strings.TrimSpace(holdings) == "" {
		holdings = "None (Empty Position)"
	}

	marketRules := "### MARKET CONTEXT: China A-Shares (Shanghai/Shenzhen) ###\n" +
		"1. **T+1 Rule**: Shares bought today CANNOT be sold until tomorrow.\n" +
		"2. **Price Limits**: Max daily movement is usually ±10% (±20% for STAR/ChiNext boards).\n" +
		"3. **Long Only**: Retail traders usually cannot short sell. Profit only comes from price rising.\n" +
		"4. **Formatting**: Use bolding for key numbers."

	persona := "You are a seasoned A-Share Stock Analyst. Your goal is to protect the user's capital first, " +
		"and then seek profit. You communicate clearly, concisely, and objectively."

	newsSection := ""
	if strings.TrimSpace(in.NewsDigest) != "" {
		newsSection = fmt.Sprintf("\n--- RECENT NEWS ---\n%s\n", in.NewsDigest)
	}

	return fmt.Sprintf(`%s

%s

--- USER INFO ---
* **Stock**: %s (%s)
* **Strategy Style**: %s (This determines how you interpret indicators)
* **Current Position**: %s

--- MARKET DATA (Real-time) ---
%s
%s
--- YOUR TASK ---
Based on the data above, output a response in the following format:

## 1. Market Analysis
(Briefly interpret the Trend and Momentum. Is it bullish or bearish for the user's timeframe?)

## 2. Decision
(One word: **BUY**, **SELL**, **HOLD**, **ADD**, or **REDUCE**)

## 3. Rationale
* **For Logic**: Why this decision? Quote specific indicators (e.g., "RSI is 37, not oversold enough yet" or "MACD just crossed dead").
* **For Position**: If user holds stock, advise on cost management. If empty, advise on entry price.

## 4. Risk Control
* **Stop Loss**: Suggest a price level to exit if wrong.
* **Warning**: Mention any specific risks (e.g., "Downtrend is strong, catching a falling knife").`,
		persona, marketRules,
		in.StockName, in.StockCode,
		strings.ToUpper(in.Horizon), holdings,
		in.Summary.SummaryText, newsSection)
}

// ChinesePromptBuilder 中文提示词
type ChinesePromptBuilder struct{}

func (ChinesePromptBuilder) Build(in PromptInput) string {
	holdings := in.Holdings
	if strings.TrimSpace(holdings) == "" {
		holdings = "无持仓 (Empty Position)"
	}

	marketRules := "### 市场背景：中国 A 股 (上海/深圳) ###\n" +
		"1. **T+1 规则**: 今天买入的股票明天才能卖出。\n" +
		"2. **涨跌幅限制**: 通常为 ±10% (科创板/创业板为 ±20%)。\n" +
		"3. **只能做多**: 散户通常只能靠股价上涨获利 (无做空机制)。\n"

	newsSection := ""
	if strings.TrimSpace(in.NewsDigest) != "" {
		newsSection = fmt.Sprintf("\n--- 最新公告/新闻 ---\n%s\n", in.NewsDigest)
	}

	return fmt.Sprintf(`你是一位经验丰富的 A 股投资分析师。你的目标是首先保护用户的本金，其次才是追求利润。
你的回答必须使用**中文 (Simplified Chinese)**。

%s

--- 用户信息 ---
* **股票**: %s (%s)
* **交易风格**: %s (这将决定你如何解读指标权重)
* **当前持仓**: %s

--- 实时市场数据 ---
%s
%s
--- 你的任务 ---
基于以上数据，请输出以下格式的建议：

## 1. 市场分析
(简要解读趋势和动能。对用户的交易周期来说是多头还是空头？)

## 2. 交易决策
(仅限一个词：**买入 (BUY)**、**卖出 (SELL)**、**持有 (HOLD)**、**加仓 (ADD)** 或 **减仓 (REDUCE)**)

## 3. 决策逻辑
* **技术面**: 引用具体指标数值 (如 "RSI 为 37，尚未超卖" 或 "MACD 死叉")。
* **持仓建议**: 如果用户被套，建议如何管理成本；如果空仓，建议入场位。

## 4. 风险控制
* **止损位**: 给出具体的止损价格。
* **风险预警**: 具体的下行风险是什么。`,
		marketRules,
		in.StockName, in.StockCode,
		strings.ToUpper(in.Horizon), holdings,
		in.Summary.SummaryText, newsSection)
}
