package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader = "Idempotency-Key"

	// Replayed signup/signin responses carry a live token, so they are
	// kept only long enough to absorb client retries.
	idempotencyTTL = 10 * time.Minute

	// MaxIdempotentBodyBytes caps the body read for keying a request.
	MaxIdempotentBodyBytes = 1 << 20
)

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
}

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response of a POST or PATCH
// repeated with the same Idempotency-Key. Keys are scoped to the route,
// the request body and the caller's Authorization header. Redis failures
// fall through to normal processing.
func IdempotencyMiddleware(client redis.Cmdable) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxIdempotentBodyBytes)
		body, err := c.GetRawData()
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		cacheKey := idempotencyCacheKey(c, key, body)

		cached, err := getCachedResponse(ctx, client, cacheKey)
		if err != nil && err != redis.Nil {
			c.Next()
			return
		}

		if cached != nil {
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.StatusCode, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server errors are retryable and are not stored.
		if status := c.Writer.Status(); status >= 200 && status < 500 {
			_ = setCachedResponse(ctx, client, cacheKey, &cachedResponse{
				StatusCode: status,
				Body:       w.body.Bytes(),
			}, idempotencyTTL)
		}
	}
}

func idempotencyCacheKey(c *gin.Context, key string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte{0})
	h.Write([]byte(c.FullPath()))
	h.Write([]byte{0})
	h.Write([]byte(c.GetHeader("Authorization")))
	h.Write([]byte{0})
	h.Write(body)
	return "idempotency:" + key + ":" + hex.EncodeToString(h.Sum(nil))
}

// getCachedResponse retrieves a cached response from Redis.
func getCachedResponse(ctx context.Context, client redis.Cmdable, key string) (*cachedResponse, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &cached, nil
}

// setCachedResponse stores a response in Redis.
func setCachedResponse(ctx context.Context, client redis.Cmdable, key string, response *cachedResponse, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return client.Set(ctx, key, data, ttl).Err()
}
