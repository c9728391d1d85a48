package middleware

import (
	"net/http"
	"sync"
	"time"

	"huddle/config"
	"huddle/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sync callbacks arrive from relay agents without auth, so the limit
// has to tolerate a whole team reporting within the same poll window.
const (
	defaultRequestsPerMinute = 120
	burstSize                = 40

	// Idle limiters are purged once the table grows past this size.
	limiterPurgeThreshold = 1024
	limiterIdleAfter      = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterStore struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

var limiterStore = &rateLimiterStore{
	limiters: make(map[string]*clientLimiter),
}

func (s *rateLimiterStore) getLimiter(ip string, perMinute int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	cl, ok := s.limiters[ip]
	if !ok {
		if len(s.limiters) >= limiterPurgeThreshold {
			s.purgeIdleLocked()
		}
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burstSize),
		}
		s.limiters[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// purgeIdleLocked drops limiters not seen recently. Caller holds mu.
func (s *rateLimiterStore) purgeIdleLocked() {
	cutoff := time.Now().Add(-limiterIdleAfter)
	for ip, cl := range s.limiters {
		if cl.lastSeen.Before(cutoff) {
			delete(s.limiters, ip)
		}
	}
}

// RateLimitMiddleware limits requests per client IP, at the configured
// per-minute rate or a default that fits a full team syncing at once.
func RateLimitMiddleware() gin.HandlerFunc {
	perMinute := config.AppConfig.MaxRequestsPerMin
	if perMinute <= 0 {
		perMinute = defaultRequestsPerMinute
	}
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !limiterStore.getLimiter(ip, perMinute).Allow() {
			utils.GetLogger().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}
