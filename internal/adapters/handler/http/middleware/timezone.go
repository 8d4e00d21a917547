package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	TimezoneHeader     = "X-Timezone"
	ContextLocationKey = "location"
)

// Timezone resolves the caller's IANA zone from the X-Timezone header so
// handlers can work out "today" the way the client sees it. A missing header
// means UTC, an unknown zone is rejected.
func Timezone() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(TimezoneHeader))
		if name == "" {
			c.Set(ContextLocationKey, time.UTC)
			c.Next()
			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown time zone: " + name})
			return
		}

		c.Set(ContextLocationKey, loc)
		c.Next()
	}
}

func GetLocation(c *gin.Context) *time.Location {
	if v, ok := c.Get(ContextLocationKey); ok {
		if loc, ok := v.(*time.Location); ok {
			return loc
		}
	}
	return time.UTC
}
