package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/killerdias/controle-ferias/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency short-circuits duplicate POSTs that carry the same
// Idempotency-Key header. The first request takes a short-lived lock; a
// concurrent duplicate gets 409 until the original finishes. The handler
// closes the loop: on success it stores its payload under the cache key from
// the gin context and drops the lock key, so a later retry replays the stored
// payload here instead of re-running the mutation.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.AbortWithStatusJSON(http.StatusOK, response.ApiEnvelope{Ok: true, Data: cached})
				return
			}
		}

		// Lock expires on its own so a crashed handler cannot wedge the key.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A sua requisição ainda está sendo processada, aguarde.",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
