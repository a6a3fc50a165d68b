package middleware

import (
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/logger"
	"efood-checkout/internal/pkg/validation"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

const (
	RequestIDKey    = "request_id"
	LanguageKey     = "lang"
	RequestIDHeader = "X-Request-ID"
)

// RequestInit tags every request with an id and the negotiated language,
// and logs it once served.
func RequestInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Set(LanguageKey, validation.MatchLanguage(c.GetHeader("Accept-Language")))

		c.Next()

		logger.HTTP.Printf("%s %s %s %d %s",
			requestID,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// ResponseInit installs the "send" function handlers use to write the
// response envelope.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			r = helper.ParseResponse(r)
			c.AbortWithStatusJSON(r.Code, helper.ToResponseAPI(r))
		})
		c.Next()
	}
}

// GetLanguage returns the language negotiated by RequestInit.
func GetLanguage(c *gin.Context) language.Tag {
	if v, ok := c.Get(LanguageKey); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return validation.DefaultLanguage
}
