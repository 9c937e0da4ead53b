package middleware

import (
	"net/http"
	"sync"
	"time"

	"billsmith/config"

	"github.com/gin-gonic/gin"
)

// rateLimiter 按 IP 记录窗口内的请求时间
// 过期 IP 在请求路径上按窗口周期顺带清理，不额外起 goroutine
type rateLimiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	store       map[string][]time.Time
	lastSweep   time.Time
	now         func() time.Time
}

func newRateLimiter(maxRequests int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		maxRequests: maxRequests,
		window:      window,
		store:       make(map[string][]time.Time),
		now:         time.Now,
	}
}

// allow 记录一次请求，超过限制返回 false
func (l *rateLimiter) allow(ip string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	ts := pruneBefore(l.store[ip], cutoff)
	if len(ts) >= l.maxRequests {
		l.store[ip] = ts
		return false
	}
	l.store[ip] = append(ts, now)
	return true
}

// sweep 删除窗口内没有请求的 IP，调用方持有锁
func (l *rateLimiter) sweep(cutoff time.Time) {
	for ip, ts := range l.store {
		ts = pruneBefore(ts, cutoff)
		if len(ts) == 0 {
			delete(l.store, ip)
			continue
		}
		l.store[ip] = ts
	}
}

// RateLimit 按 IP 的滑动窗口限流，window 内最多 maxRequests 次，超过返回 429
// maxRequests<=0 时不限流
func RateLimit(maxRequests int, window time.Duration, message string) gin.HandlerFunc {
	if maxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return rateLimitWith(newRateLimiter(maxRequests, window), message)
}

func rateLimitWith(l *rateLimiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": message,
			})
			return
		}
		c.Next()
	}
}

// pruneBefore 移除窗口外的记录
func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// UploadRateLimit 上传接口限流
func UploadRateLimit(cfg config.UploadConfig) gin.HandlerFunc {
	return RateLimit(cfg.RateLimit, cfg.RateWindow, "Too many uploads, please try again later")
}
