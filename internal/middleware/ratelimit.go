package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LimiterStore decides whether another request from key fits the budget.
type LimiterStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiterStore keeps a token bucket per key inside this process.
type MemoryLimiterStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewMemoryLimiterStore allows limit requests per window per key, refilled
// continuously.
func NewMemoryLimiterStore(limit int, window time.Duration) *MemoryLimiterStore {
	s := &MemoryLimiterStore{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(limit) / window.Seconds()),
		burst:    limit,
		window:   window,
		stop:     make(chan struct{}),
	}

	go s.cleanup()

	return s
}

func (s *MemoryLimiterStore) cleanup() {
	ticker := time.NewTicker(s.window)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			for key, v := range s.visitors {
				if time.Since(v.lastSeen) > s.window {
					delete(s.visitors, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MemoryLimiterStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow(), nil
}

func (s *MemoryLimiterStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// RedisLimiterStore is a fixed-window counter shared by every replica.
type RedisLimiterStore struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiterStore(client *redis.Client, limit int, window time.Duration) *RedisLimiterStore {
	return &RedisLimiterStore{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

func (s *RedisLimiterStore) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().UnixNano() / int64(s.window)
	redisKey := fmt.Sprintf("%s%s:%d", s.prefix, key, bucket)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("rate limit counter: %w", err)
	}

	return incr.Val() <= int64(s.limit), nil
}

type RateLimiter struct {
	store LimiterStore
	log   *zap.Logger
}

func NewRateLimiter(store LimiterStore, log *zap.Logger) *RateLimiter {
	return &RateLimiter{store: store, log: log}
}

// Middleware rejects callers over budget with 429. Store failures let the
// request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := rl.store.Allow(r.Context(), clientIP(r))
		if err != nil {
			rl.log.Warn("rate limiter unavailable", zap.Error(err))
		}

		if !allowed {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
