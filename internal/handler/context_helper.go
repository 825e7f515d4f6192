package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/middleware"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
)

func sessionFromContext(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}

func tokenFromContext(c *gin.Context) string {
	value, exists := c.Get(middleware.ContextTokenKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}
