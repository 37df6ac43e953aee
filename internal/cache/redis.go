package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// InitRedis 初始化Redis连接，地址为空时跳过（退回进程内缓存）
func InitRedis(addr string) error {
	if addr == "" {
		return fmt.Errorf("未配置Redis地址")
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password
		DB:       0,
	})

	// 测试连接
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb = nil
		return fmt.Errorf("Redis连接失败: %v", err)
	}
	return nil
}

// Set 设置缓存
func Set(key string, value interface{}, expiration time.Duration) error {
	if rdb == nil {
		return fmt.Errorf("Redis未初始化")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, data, expiration).Err()
}

// Get 获取缓存
func Get(key string, dest interface{}) error {
	if rdb == nil {
		return fmt.Errorf("Redis未初始化")
	}

	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete 删除缓存
func Delete(key string) error {
	if rdb == nil {
		return fmt.Errorf("Redis未初始化")
	}
	return rdb.Del(ctx, key).Err()
}

// Close 关闭Redis连接
func Close() error {
	if rdb != nil {
		return rdb.Close()
	}
	return nil
}

// Provider 把Redis包装成 stockdata.CacheProvider 需要的形状
type Provider struct {
	keyPrefix string
}

// NewProvider 创建Redis缓存提供者，要求 InitRedis 已成功
func NewProvider(keyPrefix string) (*Provider, error) {
	if rdb == nil {
		return nil, fmt.Errorf("Redis未初始化")
	}
	return &Provider{keyPrefix: keyPrefix}, nil
}

func (p *Provider) Get(key string, dest any) error {
	return Get(p.keyPrefix+":"+key, dest)
}

func (p *Provider) Set(key string, value any, expiration time.Duration) error {
	return Set(p.keyPrefix+":"+key, value, expiration)
}
