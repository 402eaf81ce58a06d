package model

import (
	"time"
)

// UserTweet is the "many-to-many" authorship relation between users and
// tweets. The schema allows several authors but the application layer only
// ever attaches one on creation.
type UserTweet struct {
	UserID    uint `gorm:"primaryKey"`
	TweetID   uint `gorm:"primaryKey"`
	CreatedAt time.Time
}
