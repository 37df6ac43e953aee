package stockdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

var (
	stockListCache []model.Stock
	stockListMutex sync.RWMutex
	lastFetchTime  time.Time
	cacheDuration  = 24 * time.Hour
)

// GetStockList 获取A股股票列表（东方财富，结果在进程内缓存一天）
func GetStockList() ([]model.Stock, error) {
	stockListMutex.RLock()
	if len(stockListCache) > 0 && time.Since(lastFetchTime) < cacheDuration {
		defer stockListMutex.RUnlock()
		return stockListCache, nil
	}
	stockListMutex.RUnlock()

	var stocks []model.Stock

	// 沪市主板 (60开头)
	shStocks, err := fetchEMStocks("m:1+t:2,m:1+t:23")
	if err == nil {
		for _, s := range shStocks {
			if strings.HasPrefix(s.Code, "6") {
				s.Market = "SH"
				stocks = append(stocks, s)
			}
		}
	}

	// 深市主板 (00开头)
	szStocks, err := fetchEMStocks("m:0+t:6,m:0+t:80")
	if err == nil {
		for _, s := range szStocks {
			if strings.HasPrefix(s.Code, "0") {
				s.Market = "SZ"
				stocks = append(stocks, s)
			}
		}
	}

	if len(stocks) == 0 {
		return nil, fmt.Errorf("获取股票列表失败")
	}

	stockListMutex.Lock()
	stockListCache = stocks
	lastFetchTime = time.Now()
	stockListMutex.Unlock()

	return stocks, nil
}

// fetchEMStocks 从东方财富API获取股票
func fetchEMStocks(fs string) ([]model.Stock, error) {
	url := fmt.Sprintf("https://push2.eastmoney.com/api/qt/clist/get?pn=1&pz=5000&fs=%s&fields=f12,f14", fs)

	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://quote.eastmoney.com")

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// diff 可能是数组，也可能是 {"0":{...}} 形式的对象
	var result struct {
		Data struct {
			Diff json.RawMessage `json:"diff"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if len(result.Data.Diff) == 0 || string(result.Data.Diff) == "null" {
		return nil, fmt.Errorf("东方财富返回空数据")
	}

	type diffItem struct {
		F12 string `json:"f12"` // 代码
		F14 string `json:"f14"` // 名称
	}

	var diffList []diffItem
	if err := json.Unmarshal(result.Data.Diff, &diffList); err != nil {
		var diffMap map[string]diffItem
		if err2 := json.Unmarshal(result.Data.Diff, &diffMap); err2 != nil {
			return nil, err
		}
		for _, item := range diffMap {
			diffList = append(diffList, item)
		}
	}

	var stocks []model.Stock
	for _, item := range diffList {
		stocks = append(stocks, model.Stock{
			Code: item.F12,
			Name: item.F14,
		})
	}
	return stocks, nil
}

// SearchStocks 按代码或名称搜索股票，最多返回100条
func SearchStocks(keyword string) ([]model.Stock, error) {
	allStocks, err := GetStockList()
	if err != nil {
		return nil, err
	}

	if keyword == "" {
		return allStocks, nil
	}

	keyword = strings.ToUpper(keyword)
	var result []model.Stock
	for _, s := range allStocks {
		if strings.Contains(s.Code, keyword) || strings.Contains(strings.ToUpper(s.Name), keyword) {
			result = append(result, s)
			if len(result) >= 100 {
				break
			}
		}
	}
	return result, nil
}

// GetStockName 获取股票名称，查不到时退回清洗后的代码本身
func GetStockName(code string) (string, error) {
	code = SanitizeStockCode(code)
	allStocks, err := GetStockList()
	if err != nil {
		return code, err
	}
	for _, s := range allStocks {
		if s.Code == code {
			return s.Name, nil
		}
	}
	return code, nil
}
