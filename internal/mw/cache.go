package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status int
	body   []byte
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache is a short-TTL in-memory response cache for catalog read
// endpoints. Only successful GET responses are cached, keyed by request
// URI. TTLs stay well under the snapshot interval so cached reads never
// lag a full refresh by much.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if hit, found := store.Get(key); found {
			cached := hit.(cachedResponse)
			c.Header("X-Cache", "HIT")
			c.Data(cached.status, "application/json; charset=utf-8", cached.body)
			c.Abort()
			return
		}

		cw := &captureWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = cw

		c.Next()

		if cw.Status() >= 200 && cw.Status() < 300 {
			store.Set(key, cachedResponse{
				status: cw.Status(),
				body:   cw.body.Bytes(),
			}, ttl)
		}
	}
}
