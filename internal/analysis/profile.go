package analysis

// HorizonProfile 单个交易周期的指标参数配置，定义后不再修改
type HorizonProfile struct {
	Tag        string // short, mid, long
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSILength  int
	EMAFast    int
	EMASlow    int
	Desc       string // 提示词和摘要中展示的策略描述
}

// DefaultHorizon 未识别的周期标签统一回退到中线
const DefaultHorizon = "mid"

// 不同周期的参数策略
var horizonProfiles = map[string]HorizonProfile{
	// 短线：激进，反应快，噪音多
	"short": {
		Tag:        "short",
		MACDFast:   6,
		MACDSlow:   13,
		MACDSignal: 4,
		RSILength:  6,
		EMAFast:    5,  // 5日线 (攻击线)
		EMASlow:    10, // 10日线 (操盘线)
		Desc:       "Aggressive/Short-term",
	},
	// 中线：标准，经典参数
	"mid": {
		Tag:        "mid",
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		RSILength:  14,
		EMAFast:    20, // 20日线 (月线/生命线)
		EMASlow:    60, // 60日线 (季线/决策线)
		Desc:       "Standard/Swing-trade",
	},
	// 长线：稳健，过滤短期波动
	"long": {
		Tag:        "long",
		MACDFast:   24,
		MACDSlow:   52,
		MACDSignal: 18,
		RSILength:  21,
		EMAFast:    60,  // 季线
		EMASlow:    250, // 年线 (牛熊分界)
		Desc:       "Conservative/Long-term",
	},
}

// ResolveProfile 根据周期标签取参数配置，标签未识别时回退到 mid，不报错
func ResolveProfile(tag string) HorizonProfile {
	if p, ok := horizonProfiles[tag]; ok {
		return p
	}
	return horizonProfiles[DefaultHorizon]
}

// Horizons 已定义的周期标签
func Horizons() []string {
	return []string{"short", "mid", "long"}
}
