package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const dashscopeURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"

// QwenRequest 通义千问请求
type QwenRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []Message `json:"messages"`
	} `json:"input"`
}

// Message 消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QwenResponse 通义千问响应
type QwenResponse struct {
	Output struct {
		Text    string `json:"text"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Client 通义千问投资建议客户端。
// 未配置API Key时退化为基于指标的本地建议，不报错。
type Client struct {
	apiKey  string
	model   string
	builder PromptBuilder
	httpc   *http.Client
}

// NewClient 创建客户端
func NewClient(apiKey, model string, builder PromptBuilder) *Client {
	if model == "" {
		model = "qwen-plus"
	}
	if builder == nil {
		builder = ChinesePromptBuilder{}
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		builder: builder,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Advise 生成交易建议
func (c *Client) Advise(in PromptInput) (string, error) {
	if c.apiKey == "" {
		log.Println("[LLM] DASHSCOPE_API_KEY 未配置，使用备用分析")
		return c.fallbackAdvice(in), nil
	}

	prompt := c.builder.Build(in)

	req := QwenRequest{Model: c.model}
	req.Input.Messages = []Message{
		{
			Role:    "system",
			Content: "你是一位资深的A股投资顾问，擅长结合技术指标与消息面给出可执行的交易计划。优先保护本金，其次追求收益，结论必须引用具体指标数值。",
		},
		{
			Role:    "user",
			Content: prompt,
		},
	}
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %v", err)
	}

	httpReq, err := http.NewRequest("POST", dashscopeURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("请求失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %v", err)
	}

	var qwenResp QwenResponse
	if err := json.Unmarshal(body, &qwenResp); err != nil {
		log.Printf("[LLM] 解析响应失败: %v", err)
		return c.fallbackAdvice(in), nil
	}

	// 优先从 choices 获取结果（qwen3 格式），否则从 text 获取（旧格式）
	result := qwenResp.Output.Text
	if result == "" && len(qwenResp.Output.Choices) > 0 {
		result = qwenResp.Output.Choices[0].Message.Content
	}
	if result == "" {
		log.Println("[LLM] API返回空结果，使用备用分析")
		return c.fallbackAdvice(in), nil
	}
	return result, nil
}

// fallbackAdvice 不依赖外部服务的保底建议，直接复述分类结论
func (c *Client) fallbackAdvice(in PromptInput) string {
	s := in.Summary

	var stance string
	switch {
	case strings.HasPrefix(s.Trend, "STRONG UPTREND") && s.Momentum == "BULLISH":
		stance = "技术面偏多，可考虑持有或逢低参与"
	case strings.HasPrefix(s.Trend, "STRONG DOWNTREND"):
		stance = "技术面偏空，建议观望或控制仓位"
	default:
		stance = "方向不明朗，建议以观望为主"
	}

	rsiDesc := "正常区间"
	if strings.HasPrefix(s.RSIStatus, "OVERBOUGHT") {
		rsiDesc = "超买区间，注意回调风险"
	} else if strings.HasPrefix(s.RSIStatus, "OVERSOLD") {
		rsiDesc = "超卖区间，可能出现反弹"
	}

	return fmt.Sprintf("%s（%s）最新收盘 %.2f，均线趋势为 %s，MACD动能 %s（柱状图 %.3f），RSI %.2f 处于%s。%s。以上为指标规则生成的参考意见，请结合自身风险偏好决策。",
		in.StockName, in.StockCode, s.Price, s.Trend, s.Momentum, s.MACDHist, s.RSI, rsiDesc, stance)
}
