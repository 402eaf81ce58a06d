package model

import (
	"time"
)

// TweetMedia is the "many-to-many" relation between tweets and media rows.
type TweetMedia struct {
	TweetID   uint `gorm:"primaryKey"`
	MediaID   uint `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (TweetMedia) TableName() string {
	return "tweets_media"
}
