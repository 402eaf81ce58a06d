package model

import (
	"time"

	Logger "github.com/Luismorlan/tweetmux/utils/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

/*

Tweet is a single post on the platform.

Id: primary key
CreatedAt: time when entity is created

Content: free text of the post

Authors: authoring users, "many-to-many" relation. Declared many-to-many to
         mirror the schema, but creation attaches exactly one author and the
         rest of the code treats the first entry as the owner.
Likes: likes placed on this tweet, keyed by TweetID
Media: attachments of this tweet, "many-to-many" relation

*/

type Tweet struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Content   string
	Authors   []*User  `gorm:"many2many:user_tweets;"`
	Likes     []*Like  `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE;"`
	Media     []*Media `gorm:"many2many:tweets_media;constraint:OnDelete:CASCADE;"`
}

// FileRemover removes a stored media file by its key. Satisfied by the
// storage layer; declared here so tweet deletion can stay storage-agnostic.
type FileRemover interface {
	Remove(key string) error
}

// AddTweet creates a tweet authored by user. When media ids are supplied,
// every id must resolve; a partial match is rejected rather than silently
// dropped.
func AddTweet(db *gorm.DB, user *User, content string, mediaIDs []uint) (uint, error) {
	tweet := Tweet{Content: content, Authors: []*User{user}}
	if len(mediaIDs) > 0 {
		media, err := GetAllMedia(db, mediaIDs)
		if err != nil {
			return 0, err
		}
		tweet.Media = media
	}
	if err := db.Create(&tweet).Error; err != nil {
		return 0, errors.Wrap(err, "failed to insert tweet")
	}
	return tweet.ID, nil
}

// takeTweet loads a tweet with authors, media and likes eagerly populated,
// and returns nil when the tweet does not exist or is not owned by user.
// Ownership is enforced by filtering: absence and permission-denied are
// indistinguishable to the caller.
func takeTweet(db *gorm.DB, tweetID uint, user *User) (*Tweet, error) {
	var tweet Tweet
	res := db.
		Preload("Authors").
		Preload("Media").
		Preload("Likes").
		First(&tweet, "id = ?", tweetID)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, res.Error
	}
	if len(tweet.Authors) == 0 || tweet.Authors[0].ID != user.ID {
		return nil, nil
	}
	return &tweet, nil
}

// DeleteTweet deletes a tweet owned by user together with its dependent
// state: backing files on disk (best-effort, per-file failures are logged
// and skipped), media rows, like rows and all join rows. Join rows are
// removed explicitly so filesystem and row state stay consistent without
// relying on engine-level cascades.
func DeleteTweet(db *gorm.DB, store FileRemover, tweetID uint, user *User) error {
	tweet, err := takeTweet(db, tweetID, user)
	if err != nil {
		return err
	}
	if tweet == nil {
		return NewDomainError(ErrKindTweetNotFound, "Tweet not found")
	}

	if len(tweet.Media) > 0 {
		mediaIDs := make([]uint, 0, len(tweet.Media))
		for _, media := range tweet.Media {
			if media.File != "" {
				if err := store.Remove(media.File); err != nil {
					Logger.Log.WithError(err).Warn("failed to remove media file: ", media.File)
				}
			}
			mediaIDs = append(mediaIDs, media.ID)
		}
		if err := db.Where("tweet_id = ?", tweet.ID).Delete(&TweetMedia{}).Error; err != nil {
			return err
		}
		if err := DeleteMediaByIDs(db, mediaIDs); err != nil {
			return err
		}
	}

	if err := db.Where("tweet_id = ?", tweet.ID).Delete(&Like{}).Error; err != nil {
		return err
	}

	if err := db.Where("tweet_id = ?", tweet.ID).Delete(&UserTweet{}).Error; err != nil {
		return err
	}
	return db.Delete(tweet).Error
}
