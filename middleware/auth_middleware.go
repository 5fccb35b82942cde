package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"showcase/api/logger"
	"showcase/api/requestdata"
	"showcase/api/utils"
)

const (
	authCookie   = "jwt_token"
	apiKeyHeader = "X-API-KEY"
)

// Auth resolves the caller from the X-API-KEY header or a JWT carried in the
// jwt_token cookie or an Authorization bearer header.
type Auth struct {
	jwt    *utils.JWTManager
	apiKey string
	log    *logger.Logger
}

// NewAuth builds the middleware. An empty apiKey disables key access.
func NewAuth(jwt *utils.JWTManager, apiKey string, log *logger.Logger) *Auth {
	return &Auth{jwt: jwt, apiKey: apiKey, log: log.With("component", "auth")}
}

func (a *Auth) validAPIKey(c *gin.Context) bool {
	if a.apiKey == "" {
		return false
	}
	got := c.GetHeader(apiKeyHeader)
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(a.apiKey)) == 1
}

func bearerToken(c *gin.Context) string {
	if token, err := c.Cookie(authCookie); err == nil && token != "" {
		return token
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// resolve records the caller on the request context and reports whether one
// was found.
func (a *Auth) resolve(c *gin.Context) bool {
	if a.validAPIKey(c) {
		setInfo(c, func(info *requestdata.Info) { info.Superuser = true })
		return true
	}
	token := bearerToken(c)
	if token == "" {
		return false
	}
	claims, err := a.jwt.Validate(token)
	if err != nil {
		a.log.Debug("ignoring invalid token", "path", c.Request.URL.Path, "error", err)
		return false
	}
	setInfo(c, func(info *requestdata.Info) { info.Claims = claims })
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	return true
}

// Optional attaches the caller when credentials are valid and otherwise
// continues anonymously. Per-operation checks happen in the resolvers.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.resolve(c)
		c.Next()
	}
}

// Required rejects requests without valid credentials.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.resolve(c) {
			a.log.Warn("unauthenticated request", "path", c.Request.URL.Path, "ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: missing or invalid credentials"})
			return
		}
		c.Next()
	}
}
