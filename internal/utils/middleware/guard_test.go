package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiter struct {
	counts map[string]int
	err    error
}

func (l *fakeLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, int, error) {
	if l.err != nil {
		return false, 0, l.err
	}
	l.counts[key]++
	remaining := limit - l.counts[key]
	if remaining < 0 {
		remaining = 0
	}
	return l.counts[key] <= limit, remaining, nil
}

type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	locks   map[string]bool
	getErr  error
	unlocks int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}, locks: map[string]bool{}}
}

func (s *fakeStore) Lock(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[key] {
		return false, nil
	}
	s.locks[key] = true
	return true, nil
}

func (s *fakeStore) Unlock(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	s.unlocks++
	return nil
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.data[key], nil
}

func (s *fakeStore) Put(_ context.Context, key string, data []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func TestRateLimit(t *testing.T) {
	limiter := &fakeLimiter{counts: map[string]int{}}

	router := gin.New()
	router.Use(RateLimit(limiter, RateLimitConfig{Limit: 2, Window: time.Minute}, nil))
	router.GET("/users/:user_id/payment-methods", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/customer-profiles", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := do("/users/1/payment-methods")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get(RateLimitLimit))
	assert.Equal(t, "1", w.Header().Get(RateLimitRemaining))

	assert.Equal(t, http.StatusOK, do("/users/1/payment-methods").Code)

	w = do("/users/1/payment-methods")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get(RetryAfter))
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")

	// Other users have their own budget; routes without a user fall back to IP.
	assert.Equal(t, http.StatusOK, do("/users/2/payment-methods").Code)
	assert.Equal(t, http.StatusOK, do("/customer-profiles").Code)
	assert.Equal(t, 1, limiter.counts["user:2"])
	assert.Equal(t, 1, limiter.counts["ip:192.0.2.1"])
}

func TestRateLimit_FailsOpen(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(&fakeLimiter{err: errors.New("redis down")}, RateLimitConfig{Limit: 1, Window: time.Minute}, nil))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(RateLimitLimit))
}

func TestIdempotency(t *testing.T) {
	store := newFakeStore()
	calls := 0

	router := gin.New()
	router.Use(Idempotency(store, IdempotencyConfig{}, nil))
	router.POST("/users/:user_id/charges", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"transId": "60001", "call": calls})
	})

	post := func(path, key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := post("/users/1/charges", "k1", `{"amount_cents":500}`)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get(IdempotentReplayHeader))
	assert.Equal(t, 1, store.unlocks)

	t.Run("replays the recorded response", func(t *testing.T) {
		w := post("/users/1/charges", "k1", `{"amount_cents":500}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get(IdempotentReplayHeader))
		assert.JSONEq(t, first.Body.String(), w.Body.String())
		assert.Equal(t, 1, calls)
	})

	t.Run("rejects a reused key with another body", func(t *testing.T) {
		w := post("/users/1/charges", "k1", `{"amount_cents":900}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "IDEMPOTENCY_KEY_REUSED")
		assert.Equal(t, 1, calls)
	})

	t.Run("scopes keys to the path", func(t *testing.T) {
		w := post("/users/2/charges", "k1", `{"amount_cents":500}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("passes through without a key", func(t *testing.T) {
		post("/users/1/charges", "", `{"amount_cents":500}`)
		post("/users/1/charges", "", `{"amount_cents":500}`)
		assert.Equal(t, 4, calls)
	})
}

func TestIdempotency_InProgress(t *testing.T) {
	store := newFakeStore()
	router := gin.New()
	router.Use(Idempotency(store, IdempotencyConfig{}, nil))
	router.POST("/charges", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/charges", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "busy")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	_, err := store.Lock(context.Background(), storeKey(c, "busy"), time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_IN_PROGRESS")
}

func TestIdempotency_SkipsServerErrors(t *testing.T) {
	store := newFakeStore()
	router := gin.New()
	router.Use(Idempotency(store, IdempotencyConfig{}, nil))
	router.POST("/charges", func(c *gin.Context) { c.Status(http.StatusGatewayTimeout) })

	req := httptest.NewRequest(http.MethodPost, "/charges", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "k")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, store.data)
	assert.Empty(t, store.locks)
}

func TestIdempotency_StoreDown(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("redis down")
	calls := 0

	router := gin.New()
	router.Use(Idempotency(store, IdempotencyConfig{}, nil))
	router.POST("/charges", func(c *gin.Context) {
		calls++
		c.Status(http.StatusOK)
	})

	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/charges", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "k")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 2, calls)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://ops.example.com"}, time.Hour))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ops.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
