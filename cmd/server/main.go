package main

import (
	"net/http"
	"os"

	"github.com/Luismorlan/tweetmux/server"
	"github.com/Luismorlan/tweetmux/server/middlewares"
	"github.com/Luismorlan/tweetmux/storage"
	"github.com/Luismorlan/tweetmux/utils"
	"github.com/Luismorlan/tweetmux/utils/dotenv"
	. "github.com/Luismorlan/tweetmux/utils/flag"
	. "github.com/Luismorlan/tweetmux/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	Parse()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	utils.InitTracer()
	utils.InitProfiler()

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("failed to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	mediaDir := os.Getenv("MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = storage.DefaultMediaDir
	}
	store, err := storage.NewLocalMediaStore(mediaDir)
	if err != nil {
		Log.Fatal("failed to create media store: ", err)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))
	router.Use(server.ErrorBoundary())
	router.Use(middlewares.APIKey(db))

	// Stored media is served back under the same prefix the feed uses for
	// attachment URLs.
	router.Static("/images", store.Dir())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := server.NewServer(db, store)
	srv.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	Log.Info("api server starts up")
	router.Run(":" + port)
}
