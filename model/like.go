package model

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

/*

Like is one (user, tweet) pair. The pair carries a composite unique index,
so a duplicate like can never be stored even when two requests race past
the application-level check.

Id: primary key
CreatedAt: time when entity is created

UserID: the liking user
TweetID: the liked tweet

*/

type Like struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    uint `gorm:"uniqueIndex:idx_likes_user_tweet;not null"`
	TweetID   uint `gorm:"uniqueIndex:idx_likes_user_tweet;not null"`
	User      *User
	Tweet     *Tweet
}

// AddLike toggles: liking an already liked tweet removes the existing like,
// otherwise a new like is inserted for the pair. A uniqueness violation on
// insert means a concurrent request stored the pair first, which is already
// the requested end state.
func AddLike(db *gorm.DB, tweetID uint, user *User) error {
	liked, err := hasLike(db, tweetID, user)
	if err != nil {
		return err
	}
	if liked {
		return DeleteLike(db, tweetID, user)
	}

	var tweet Tweet
	res := db.First(&tweet, "id = ?", tweetID)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return NewDomainError(ErrKindTweetNotFound, "Tweet does not exist")
	}
	if res.Error != nil {
		return res.Error
	}

	like := Like{UserID: user.ID, TweetID: tweet.ID}
	if err := db.Create(&like).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

// DeleteLike removes the like of user on tweetID. Unliking a tweet that was
// never liked is signalled explicitly instead of attempting to delete an
// absent row.
func DeleteLike(db *gorm.DB, tweetID uint, user *User) error {
	like, err := takeLike(db, tweetID, user)
	if err != nil {
		return err
	}
	if like == nil {
		return NewDomainError(ErrKindLikeNotFound, "Nothing to delete")
	}
	return db.Delete(like).Error
}

// takeLike resolves the like row for the (user, tweet) pair. Nil when no
// such like exists.
func takeLike(db *gorm.DB, tweetID uint, user *User) (*Like, error) {
	var like Like
	res := db.Where("user_id = ? AND tweet_id = ?", user.ID, tweetID).First(&like)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &like, nil
}

func hasLike(db *gorm.DB, tweetID uint, user *User) (bool, error) {
	like, err := takeLike(db, tweetID, user)
	if err != nil {
		return false, err
	}
	return like != nil, nil
}
