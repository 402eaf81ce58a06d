package server

import (
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/Luismorlan/tweetmux/model"
	"github.com/Luismorlan/tweetmux/server/middlewares"
	"github.com/Luismorlan/tweetmux/storage"
	"github.com/Luismorlan/tweetmux/utils"
	Logger "github.com/Luismorlan/tweetmux/utils/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server holds the per-process dependencies of the request handlers: the
// database handle (each request scopes its own transaction off it) and the
// media file store.
type Server struct {
	DB    *gorm.DB
	Store storage.MediaStore
}

func NewServer(db *gorm.DB, store storage.MediaStore) *Server {
	return &Server{DB: db, Store: store}
}

// RegisterRoutes wires every API route. The APIKey middleware guards all of
// them except user creation.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/users/new", s.CreateUser)
	api.GET("/users/me", s.CurrentUser)
	api.GET("/users/:id", s.GetUser)
	api.POST("/users/:id/follow", s.FollowUser)
	api.DELETE("/users/:id/follow", s.UnfollowUser)
	api.POST("/tweets", s.CreateTweet)
	api.GET("/tweets", s.GetFeed)
	api.DELETE("/tweets/:id", s.DeleteTweet)
	api.POST("/tweets/:id/likes", s.LikeTweet)
	api.DELETE("/tweets/:id/likes", s.UnlikeTweet)
	api.POST("/medias", s.CreateMedia)
}

// currentUser returns the user attached by the APIKey middleware.
func currentUser(c *gin.Context) *model.User {
	return c.MustGet(middlewares.ContextUserKey).(*model.User)
}

// pathID parses an integer path parameter; non-numeric input is a
// validation failure. Zero passes through and misses the lookup like any
// other absent id.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		RenderValidationError(c)
		return 0, false
	}
	return uint(id), true
}

func (s *Server) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderValidationError(c)
		return
	}
	name := utils.SanitizeIncomingData(req.Name)
	hashedKey := utils.HashAPIKey(req.ApiKey)

	var id uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = model.AddUser(tx, name, hashedKey)
		return err
	})
	if err != nil {
		c.Error(err)
		return
	}
	Logger.Log.Info("created user: ", id)
	c.JSON(http.StatusCreated, gin.H{"result": true, "id": id})
}

func (s *Server) CurrentUser(c *gin.Context) {
	profile, err := model.Profile(s.DB, currentUser(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "user": profile})
}

func (s *Server) GetUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := model.Profile(s.DB, userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "user": profile})
}

func (s *Server) FollowUser(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return model.FollowUser(tx, currentUser(c), targetID)
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": true})
}

func (s *Server) UnfollowUser(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return model.UnfollowUser(tx, currentUser(c), targetID)
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true})
}

func (s *Server) CreateTweet(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderValidationError(c)
		return
	}
	content := utils.SanitizeIncomingData(req.TweetData)

	var tweetID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		tweetID, err = model.AddTweet(tx, currentUser(c), content, req.TweetMediaIDs)
		return err
	})
	if err != nil {
		c.Error(err)
		return
	}
	Logger.Log.Info("created tweet: ", tweetID)
	c.JSON(http.StatusCreated, gin.H{"result": true, "tweet_id": tweetID})
}

func (s *Server) GetFeed(c *gin.Context) {
	feed, err := model.FeedForUser(s.DB, s.Store, currentUser(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "tweets": feed})
}

func (s *Server) DeleteTweet(c *gin.Context) {
	tweetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return model.DeleteTweet(tx, s.Store, tweetID, currentUser(c))
	})
	if err != nil {
		c.Error(err)
		return
	}
	Logger.Log.Info("deleted tweet: ", tweetID)
	c.JSON(http.StatusOK, gin.H{"result": true})
}

func (s *Server) LikeTweet(c *gin.Context) {
	tweetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return model.AddLike(tx, tweetID, currentUser(c))
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": true})
}

func (s *Server) UnlikeTweet(c *gin.Context) {
	tweetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return model.DeleteLike(tx, tweetID, currentUser(c))
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true})
}

func (s *Server) CreateMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RenderValidationError(c)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(err)
		return
	}
	defer file.Close()
	data, err := ioutil.ReadAll(file)
	if err != nil {
		c.Error(err)
		return
	}

	if !storage.IsImage(data) {
		c.Error(model.NewDomainError(model.ErrKindImageValidation, "File is not an image"))
		return
	}

	key, err := s.Store.Save(fileHeader.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}

	var mediaID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		mediaID, err = model.AddMedia(tx, key)
		return err
	})
	if err != nil {
		c.Error(err)
		return
	}
	Logger.Log.Info("created media: ", mediaID)
	c.JSON(http.StatusCreated, gin.H{"result": true, "media_id": mediaID})
}
