package middlewares

import (
	"net/http"
	"strings"

	"github.com/Luismorlan/tweetmux/model"
	"github.com/Luismorlan/tweetmux/utils"
	Logger "github.com/Luismorlan/tweetmux/utils/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContextUserKey is where the authenticated user is stored on the request
// context by the APIKey middleware.
const ContextUserKey = "user"

// Routes reachable without an api key: user creation (the key does not
// exist yet) and the unauthenticated health probe. Stored media is served
// publicly as well.
var (
	exemptPaths  = []string{"/api/users/new", "/ping"}
	exemptPrefix = "/images/"
)

// APIKey authenticates every request by the "api-key" header: the key is
// hashed and matched against stored user records. A missing header is a
// 400, a syntactically valid but unregistered key a 403. The matched user
// is attached to the request context for handlers.
func APIKey(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if utils.ContainsString(exemptPaths, path) || strings.HasPrefix(path, exemptPrefix) {
			c.Next()
			return
		}

		apiKey := c.GetHeader("api-key")
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"result":        false,
				"error_type":    "AuthenticationError",
				"error_message": "api-key header required",
			})
			return
		}

		user, err := model.GetUserByAPIKey(db, utils.HashAPIKey(apiKey))
		if err != nil {
			Logger.Log.WithError(err).Error("api key lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"result":        false,
				"error_type":    "AuthenticationError",
				"error_message": "Something went wrong on the server side",
			})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"result":        false,
				"error_type":    "AuthenticationError",
				"error_message": "Invalid api-key header",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}
