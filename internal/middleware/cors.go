package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposeHeaders    []string
	AllowCredentials bool
}

// CORS lets the browser UI call the API from another origin.
// An empty AllowedOrigins list allows every origin.
func CORS(opts CORSOptions) gin.HandlerFunc {
	origins := make(map[string]struct{})
	for _, origin := range opts.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins[trimmed] = struct{}{}
		}
	}

	allowedMethods := strings.Join(orDefault(opts.AllowedMethods, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}), ", ")
	allowedHeaders := strings.Join(orDefault(opts.AllowedHeaders, []string{"Content-Type", "Accept", "X-Request-ID"}), ", ")
	exposeHeaders := strings.Join(orDefault(opts.ExposeHeaders, []string{"X-Request-ID"}), ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowOrigin(origin, origins) {
			c.Header("Access-Control-Allow-Origin", origin)
			if opts.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Expose-Headers", exposeHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}

func allowOrigin(origin string, allowed map[string]struct{}) bool {
	if origin == "" {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}
