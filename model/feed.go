package model

import (
	"sort"

	"gorm.io/gorm"
)

// FeedTweet is the projection of a tweet in a user's feed.
type FeedTweet struct {
	ID          uint          `json:"id"`
	Content     string        `json:"content"`
	Attachments []string      `json:"attachments"`
	Author      UserSummary   `json:"author"`
	Likes       []UserSummary `json:"likes"`
}

// URLResolver maps stored media keys to the public URLs they are served
// under. Satisfied by the storage layer.
type URLResolver interface {
	GetUrlFromKey(key string) string
}

// FeedForUser returns every tweet authored by anyone the user follows,
// annotated with author, attachment URLs and liking users, ordered by
// descending like count. An empty follow set (or no matching tweets) yields
// an empty list, not an error.
//
// Sorting happens in memory since the like count is not a stored column.
// The relative order among tweets with equal like counts is whatever the
// underlying fetch returned and is not specified.
func FeedForUser(db *gorm.DB, store URLResolver, user *User) ([]FeedTweet, error) {
	current, err := getUserWithFollowed(db, user.ID)
	if err != nil {
		return nil, err
	}
	followedIDs := make([]uint, 0, len(current.Followed))
	for _, followed := range current.Followed {
		followedIDs = append(followedIDs, followed.ID)
	}
	if len(followedIDs) == 0 {
		return []FeedTweet{}, nil
	}

	// One query for the whole feed: tweets whose author association
	// intersects the followed set, with authors, media and likes (plus each
	// like's user) eagerly loaded.
	var tweets []*Tweet
	if err := db.
		Preload("Authors").
		Preload("Media").
		Preload("Likes.User").
		Joins("JOIN user_tweets ON user_tweets.tweet_id = tweets.id").
		Where("user_tweets.user_id IN ?", followedIDs).
		Find(&tweets).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(tweets, func(i, j int) bool {
		return len(tweets[i].Likes) > len(tweets[j].Likes)
	})

	feed := make([]FeedTweet, 0, len(tweets))
	for _, tweet := range tweets {
		if len(tweet.Authors) == 0 {
			continue
		}
		attachments := []string{}
		for _, media := range tweet.Media {
			attachments = append(attachments, store.GetUrlFromKey(media.File))
		}
		likes := []UserSummary{}
		for _, like := range tweet.Likes {
			if like.User == nil {
				continue
			}
			likes = append(likes, UserSummary{ID: like.User.ID, Name: like.User.Name})
		}
		feed = append(feed, FeedTweet{
			ID:          tweet.ID,
			Content:     tweet.Content,
			Attachments: attachments,
			Author:      UserSummary{ID: tweet.Authors[0].ID, Name: tweet.Authors[0].Name},
			Likes:       likes,
		})
	}
	return feed, nil
}
