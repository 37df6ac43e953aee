package stockdata

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

// HTTPClient HTTP客户端
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

const klineCacheTTL = 30 * time.Minute

var digitsRe = regexp.MustCompile(`\d+`)

// SanitizeStockCode 清洗用户输入的股票代码，保留数字并截取后6位
func SanitizeStockCode(code string) string {
	digits := digitsRe.FindAllString(code, -1)
	if len(digits) == 0 {
		return strings.TrimSpace(code)
	}
	joined := strings.Join(digits, "")
	if len(joined) > 6 {
		joined = joined[len(joined)-6:]
	}
	return joined
}

// GetKline 获取K线数据，新浪为主源，东方财富兜底
func GetKline(code, period string) (*model.KlineResponse, error) {
	code = SanitizeStockCode(code)

	cacheKey := fmt.Sprintf("kline:%s:%s", code, period)
	var cached model.KlineResponse
	if err := getCacheProvider().Get(cacheKey, &cached); err == nil && len(cached.Data) > 0 {
		return &cached, nil
	}

	data, err := getKlineFromSina(code, period)
	if err != nil || len(data) == 0 {
		log.Printf("新浪K线获取失败(%s)，切换东方财富: %v", code, err)
		data, err = getKlineFromEM(code, period)
	}
	if err != nil {
		return nil, fmt.Errorf("获取K线数据失败: %v", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("获取K线数据失败: 数据源返回为空")
	}

	name, _ := GetStockName(code)
	resp := &model.KlineResponse{
		Code:   code,
		Name:   name,
		Period: period,
		Data:   data,
	}

	if err := getCacheProvider().Set(cacheKey, resp, klineCacheTTL); err != nil {
		log.Printf("写入K线缓存失败(%s): %v", code, err)
	}
	return resp, nil
}

// GetPriceSeries 获取清洗后的日线序列：升序、去重、剔除停牌日
func GetPriceSeries(code, period string) (model.PriceSeries, string, error) {
	resp, err := GetKline(code, period)
	if err != nil {
		return nil, "", err
	}
	series := model.NewPriceSeries(resp.Data)
	if len(series) == 0 {
		return nil, "", fmt.Errorf("股票 %s 没有有效的交易数据", resp.Code)
	}
	return series, resp.Name, nil
}

// getKlineFromSina 从新浪获取K线
func getKlineFromSina(code, period string) ([]model.KlineData, error) {
	symbol := marketPrefix(code) + code

	// 周期映射：日线240分钟
	scaleMap := map[string]string{
		"daily":   "240",
		"weekly":  "1680",
		"monthly": "7200",
	}
	scale := scaleMap[period]
	if scale == "" {
		scale = "240"
	}

	url := fmt.Sprintf("https://quotes.sina.cn/cn/api/jsonp_v2.php/var__%s_%s/CN_MarketDataService.getKLineData?symbol=%s&scale=%s&ma=no&datalen=800",
		symbol, scale, symbol, scale)

	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://finance.sina.com.cn")

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// 解析JSONP响应
	jsonBody := extractJSONPBody(body)

	var rawData []struct {
		Day    string `json:"day"`
		Open   string `json:"open"`
		Close  string `json:"close"`
		High   string `json:"high"`
		Low    string `json:"low"`
		Volume string `json:"volume"`
	}
	if err := json.Unmarshal(jsonBody, &rawData); err != nil {
		return nil, err
	}

	var result []model.KlineData
	for _, item := range rawData {
		open, _ := strconv.ParseFloat(item.Open, 64)
		close, _ := strconv.ParseFloat(item.Close, 64)
		high, _ := strconv.ParseFloat(item.High, 64)
		low, _ := strconv.ParseFloat(item.Low, 64)
		volume, _ := strconv.ParseFloat(item.Volume, 64)

		result = append(result, model.KlineData{
			Date:   item.Day,
			Open:   open,
			Close:  close,
			High:   high,
			Low:    low,
			Volume: volume,
		})
	}
	return result, nil
}

// getKlineFromEM 从东方财富获取K线
func getKlineFromEM(code, period string) ([]model.KlineData, error) {
	// 沪市secid前缀1，深市0
	var secid string
	if strings.HasPrefix(code, "6") {
		secid = "1." + code
	} else {
		secid = "0." + code
	}

	kltMap := map[string]string{
		"daily":   "101",
		"weekly":  "102",
		"monthly": "103",
	}
	klt := kltMap[period]
	if klt == "" {
		klt = "101"
	}

	url := fmt.Sprintf("https://push2his.eastmoney.com/api/qt/stock/kline/get?secid=%s&fields1=f1,f2,f3,f4,f5,f6&fields2=f51,f52,f53,f54,f55,f56,f57&klt=%s&fqt=1&end=20500101&lmt=800",
		secid, klt)

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

	var emResp struct {
		Data struct {
			Klines []string `json:"klines"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &emResp); err != nil {
		return nil, err
	}

	var result []model.KlineData
	for _, line := range emResp.Data.Klines {
		parts := strings.Split(line, ",")
		if len(parts) < 7 {
			continue
		}

		open, _ := strconv.ParseFloat(parts[1], 64)
		close, _ := strconv.ParseFloat(parts[2], 64)
		high, _ := strconv.ParseFloat(parts[3], 64)
		low, _ := strconv.ParseFloat(parts[4], 64)
		volume, _ := strconv.ParseFloat(parts[5], 64)
		amount, _ := strconv.ParseFloat(parts[6], 64)

		result = append(result, model.KlineData{
			Date:   parts[0],
			Open:   open,
			Close:  close,
			High:   high,
			Low:    low,
			Volume: volume,
			Amount: amount,
		})
	}
	return result, nil
}

// marketPrefix 6开头沪市，其余按深市处理
func marketPrefix(code string) string {
	if strings.HasPrefix(code, "6") {
		return "sh"
	}
	return "sz"
}
