package middleware

import (
	"github.com/gin-gonic/gin"

	"showcase/api/requestdata"
	"showcase/api/utils"
)

func setInfo(c *gin.Context, update func(*requestdata.Info)) {
	info := requestdata.FromContext(c.Request.Context())
	update(&info)
	c.Request = c.Request.WithContext(requestdata.WithInfo(c.Request.Context(), info))
}

// RequestContext records the client address, user agent and negotiated
// language for resolvers and services.
func RequestContext(locales *utils.LocaleMatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		setInfo(c, func(info *requestdata.Info) {
			info.IP = utils.ClientIP(c.Request)
			info.UserAgent = c.Request.UserAgent()
			info.Language = locales.Match(c.Query("languageCode"), c.GetHeader("Accept-Language"))
		})
		c.Next()
	}
}
