package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Luismorlan/tweetmux/model"
	"github.com/Luismorlan/tweetmux/server/middlewares"
	"github.com/Luismorlan/tweetmux/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := utils.CreateTestDB(t)

	router := gin.New()
	router.Use(middlewares.APIKey(db))
	router.GET("/api/whoami", func(c *gin.Context) {
		user := c.MustGet(middlewares.ContextUserKey).(*model.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router, db
}

func doGet(router *gin.Engine, path, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if apiKey != "" {
		req.Header.Set("api-key", apiKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMissingHeaderRejected(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := doGet(router, "/api/whoami", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnregisteredKeyRejected(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := doGet(router, "/api/whoami", "never-registered")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisteredKeyPasses(t *testing.T) {
	router, db := newAuthRouter(t)
	_, err := model.AddUser(db, "alice", utils.HashAPIKey("alice-key"))
	require.NoError(t, err)

	rec := doGet(router, "/api/whoami", "alice-key")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExemptPathsSkipAuth(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := doGet(router, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
