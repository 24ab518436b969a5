package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/anet/internal/port/outbound"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the header for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader marks a response served from a previous request.
	IdempotentReplayHeader = "Idempotent-Replayed"

	defaultIdempotencyTTL     = 24 * time.Hour
	defaultIdempotencyLockTTL = time.Minute
)

// IdempotencyConfig holds idempotency middleware configuration.
type IdempotencyConfig struct {
	// TTL is how long a recorded response is replayed.
	TTL time.Duration
	// LockTTL bounds how long an in-flight request holds its key. It should
	// exceed the gateway timeout.
	LockTTL time.Duration
}

// recordedResponse is what a replay serves.
type recordedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	BodyHash    string `json:"body_hash"`
	Body        []byte `json:"body"`
}

// idempotencyResponseWriter wraps gin.ResponseWriter to capture the response.
type idempotencyResponseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency returns a middleware that replays the recorded response of a
// POST carrying an Idempotency-Key already seen for the same path. Reusing a
// key with a different body is rejected. 5xx responses are not recorded so
// the caller may retry them. Store failures let the request through.
func Idempotency(store outbound.IdempotencyStorePort, cfg IdempotencyConfig, log *zap.Logger) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultIdempotencyTTL
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultIdempotencyLockTTL
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		// The recording outlives a disconnecting caller.
		ctx := context.WithoutCancel(c.Request.Context())
		key := storeKey(c, idempotencyKey)
		bodyHash, err := hashRequestBody(c)
		if err != nil {
			abortJSON(c, http.StatusBadRequest, "INVALID_BODY", "Request body could not be read")
			return
		}

		data, err := store.Get(ctx, key)
		if err != nil {
			log.Warn("idempotency store unavailable", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			c.Next()
			return
		}
		if data != nil {
			replay(c, data, bodyHash, log)
			return
		}

		locked, err := store.Lock(ctx, key, cfg.LockTTL)
		if err != nil {
			log.Warn("idempotency store unavailable", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			c.Next()
			return
		}
		if !locked {
			abortJSON(c, http.StatusConflict, "REQUEST_IN_PROGRESS",
				"A request with this idempotency key is already being processed")
			return
		}
		defer func() {
			if err := store.Unlock(ctx, key); err != nil {
				log.Warn("idempotency unlock failed", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			}
		}()

		writer := &idempotencyResponseWriter{ResponseWriter: c.Writer, body: bytes.NewBuffer(nil)}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			return
		}
		recorded, err := json.Marshal(recordedResponse{
			StatusCode:  c.Writer.Status(),
			ContentType: c.Writer.Header().Get("Content-Type"),
			BodyHash:    bodyHash,
			Body:        writer.body.Bytes(),
		})
		if err == nil {
			err = store.Put(ctx, key, recorded, cfg.TTL)
		}
		if err != nil {
			log.Warn("idempotent response not recorded", zap.String("request_id", GetRequestID(c)), zap.Error(err))
		}
	}
}

func replay(c *gin.Context, data []byte, bodyHash string, log *zap.Logger) {
	var recorded recordedResponse
	if err := json.Unmarshal(data, &recorded); err != nil {
		log.Warn("discarding unreadable idempotent response", zap.Error(err))
		c.Next()
		return
	}
	if recorded.BodyHash != bodyHash {
		abortJSON(c, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED",
			"Idempotency-Key was already used with a different request body")
		return
	}

	c.Header(IdempotentReplayHeader, "true")
	c.Data(recorded.StatusCode, recorded.ContentType, recorded.Body)
	c.Abort()
}

// storeKey scopes the caller's key to the method and concrete path, so the
// same key on another user's route is a different request.
func storeKey(c *gin.Context, idempotencyKey string) string {
	hash := sha256.Sum256([]byte(c.Request.Method + ":" + c.Request.URL.Path + ":" + idempotencyKey))
	return hex.EncodeToString(hash[:])
}

// hashRequestBody hashes the body and restores it for the handler.
func hashRequestBody(c *gin.Context) (string, error) {
	if c.Request.Body == nil {
		return "", nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	hash := sha256.Sum256(body)
	return hex.EncodeToString(hash[:]), nil
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
