package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

// GraphQL serves POST requests against schema. The request context already
// carries the caller and client details set by middleware.
func GraphQL(schema *graphql.Schema) gin.HandlerFunc {
	h := &relay.Handler{Schema: schema}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "GraphQL requests must use POST"})
			return
		}
		h.ServeHTTP(c.Writer, c.Request)
	}
}
