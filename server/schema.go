package server

// UserRequest is the body of user creation.
type UserRequest struct {
	Name   string `json:"name" binding:"required"`
	ApiKey string `json:"api_key" binding:"required"`
}

// TweetRequest is the body of tweet creation.
type TweetRequest struct {
	TweetData     string `json:"tweet_data" binding:"required"`
	TweetMediaIDs []uint `json:"tweet_media_ids"`
}
