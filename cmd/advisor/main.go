package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/advisor"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/config"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
	"github.com/Yinghao-Guan/A-Share-Advisor/internal/service"
)

// 命令行交互入口，不依赖 HTTP 服务
func main() {
	cfg := config.Load()

	llm := advisor.NewClient(cfg.DashScopeAPIKey, cfg.LLMModel, advisor.NewPromptBuilder(cfg.PromptLang))
	service.Setup(llm, nil, cfg.NewsLimit)

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("====================================")
	fmt.Println("   A股智能投顾 (A-Share Advisor)")
	fmt.Println("====================================")

	code := readLine(reader, "请输入股票代码 (默认 600519): ")
	if code == "" {
		code = "600519"
	}

	fmt.Println("请选择交易风格:")
	fmt.Println("  1. 短线 (激进)")
	fmt.Println("  2. 波段 (标准)")
	fmt.Println("  3. 长线 (稳健)")
	styleMap := map[string]string{"1": "short", "2": "mid", "3": "long"}
	horizon := styleMap[readLine(reader, "输入 1/2/3 (默认 2): ")]
	if horizon == "" {
		horizon = "mid"
	}

	holdings := readLine(reader, "请输入当前持仓情况 (空仓直接回车): ")

	fmt.Println("\n正在获取行情并计算指标，请稍候...")

	resp, err := service.Advise(model.AdviseRequest{
		StockCode: code,
		Horizon:   horizon,
		Holdings:  holdings,
	})
	if err != nil {
		log.Fatalf("咨询失败: %v", err)
	}

	fmt.Printf("\n%s (%s) [%s]\n\n", resp.StockName, resp.StockCode, resp.HorizonDesc)
	fmt.Println(resp.Summary.SummaryText)
	fmt.Println("\n====== 投资建议 ======")
	fmt.Println(resp.Advice)
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
