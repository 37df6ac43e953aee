package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Yinghao-Guan/A-Share-Advisor/internal/model"
)

const DefaultDBFileName = "advisor_history.db"

// Record 一次咨询的落库快照
type Record struct {
	ID        int64   `json:"id"`
	StockCode string  `json:"stock_code"`
	StockName string  `json:"stock_name"`
	Horizon   string  `json:"horizon"`
	TradeDate string  `json:"trade_date"`
	Close     float64 `json:"close"`
	RSI       float64 `json:"rsi"`
	MACDHist  float64 `json:"macd_hist"`
	Trend     string  `json:"trend"`
	Momentum  string  `json:"momentum"`
	Advice    string  `json:"advice"`
	CreatedAt string  `json:"created_at"`
}

// Store 咨询历史存储
type Store struct {
	db *sql.DB
}

// ResolvePath 允许传目录或完整文件路径
func ResolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if filepath.Ext(p) == "" {
		return filepath.Join(p, DefaultDBFileName)
	}
	if fi, err := os.Stat(p); err == nil && fi.IsDir() {
		return filepath.Join(p, DefaultDBFileName)
	}
	return p
}

// Open 打开（必要时创建）历史库
func Open(dbPath string) (*Store, error) {
	dbPath = ResolvePath(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("历史库路径为空")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("创建历史库目录失败: %v", err)
		}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", filepath.ToSlash(dbPath)))
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS advisor_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stock_code TEXT NOT NULL,
			stock_name TEXT,
			horizon TEXT NOT NULL,
			trade_date TEXT,
			close REAL NOT NULL,
			rsi REAL NOT NULL,
			macd_hist REAL NOT NULL,
			trend TEXT,
			momentum TEXT,
			advice TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_advisor_history_code ON advisor_history(stock_code);`,
		`CREATE INDEX IF NOT EXISTS idx_advisor_history_created ON advisor_history(created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Save 保存一条咨询记录
func (s *Store) Save(code, name, horizon string, summary model.AnalysisSummary, advice string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO advisor_history
		(stock_code, stock_name, horizon, trade_date, close, rsi, macd_hist, trend, momentum, advice, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		code, name, horizon, summary.Date, summary.Price, summary.RSI, summary.MACDHist,
		summary.Trend, summary.Momentum, advice, time.Now().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("保存咨询记录失败: %v", err)
	}
	return res.LastInsertId()
}

// List 按时间倒序返回咨询记录，code 为空时不过滤
func (s *Store) List(code string, limit int) ([]Record, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `SELECT id, stock_code, stock_name, horizon, trade_date, close, rsi, macd_hist, trend, momentum, advice, created_at
		FROM advisor_history`
	args := []any{}
	if strings.TrimSpace(code) != "" {
		query += ` WHERE stock_code = ?`
		args = append(args, strings.TrimSpace(code))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询咨询记录失败: %v", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.StockCode, &r.StockName, &r.Horizon, &r.TradeDate,
			&r.Close, &r.RSI, &r.MACDHist, &r.Trend, &r.Momentum, &r.Advice, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close 关闭历史库
func (s *Store) Close() error {
	return s.db.Close()
}
