// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Luismorlan/tweetmux/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDBConnection get a connection to the database specified by env
func GetDBConnection() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	return getDB(postgres.Open(dsn))
}

func getDB(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// DatabaseSetupAndMigration binds every many-to-many relation to its
// explicit join table struct, then migrates the schema. Join tables carry
// composite primary keys and likes a composite unique index on the
// (user, tweet) pair, so a duplicate pair can never be stored twice.
func DatabaseSetupAndMigration(db *gorm.DB) {
	var err error

	err = db.SetupJoinTable(&model.User{}, "Followed", &model.Subscription{})
	if err != nil {
		panic("failed to setup subscriptions join table")
	}

	err = db.SetupJoinTable(&model.User{}, "Followers", &model.Subscription{})
	if err != nil {
		panic("failed to setup subscriptions join table")
	}

	err = db.SetupJoinTable(&model.User{}, "Tweets", &model.UserTweet{})
	if err != nil {
		panic("failed to setup user_tweets join table")
	}

	err = db.SetupJoinTable(&model.Tweet{}, "Authors", &model.UserTweet{})
	if err != nil {
		panic("failed to setup user_tweets join table")
	}

	err = db.SetupJoinTable(&model.Tweet{}, "Media", &model.TweetMedia{})
	if err != nil {
		panic("failed to setup tweets_media join table")
	}

	err = db.SetupJoinTable(&model.Media{}, "Tweets", &model.TweetMedia{})
	if err != nil {
		panic("failed to setup tweets_media join table")
	}

	db.AutoMigrate(&model.User{}, &model.Tweet{}, &model.Like{}, &model.Media{})
}

// CreateTestDB opens an isolated sqlite database rooted in the test's temp
// dir and migrates the full schema into it. The database file is removed
// together with the temp dir, and the connection is proactively closed in
// cleanup instead of deferring to GC so tests can't exhaust the connection
// limit.
func CreateTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweetmux_test.db")
	db, err := getDB(sqlite.Open(path))
	if err != nil {
		t.Fatalf("cannot open test DB: %v", err)
	}
	DatabaseSetupAndMigration(db)
	t.Cleanup(func() {
		conn, _ := db.DB()
		conn.Close()
	})
	return db
}
