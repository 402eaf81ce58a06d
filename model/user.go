package model

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const userNotFoundMsg = "User not found"

/*

User is an account on the platform.

Id: primary key
CreatedAt: time when entity is created

Name: display name, sanitized before it reaches this layer
ApiKey: hex encoded SHA-256 digest of the client secret, unique per user.
        The raw secret is never stored.

Tweets: tweets authored by this user, "many-to-many" relation (the
        application only ever attaches a single author)
Likes: likes placed by this user, keyed by UserID
Followed: users this user follows, directed edges in subscriptions
Followers: the reverse direction of the same join table

*/

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Name      string   `gorm:"not null"`
	ApiKey    string   `gorm:"uniqueIndex;not null"`
	Tweets    []*Tweet `gorm:"many2many:user_tweets;constraint:OnDelete:CASCADE;"`
	Likes     []*Like  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Followed  []*User  `gorm:"many2many:subscriptions;joinForeignKey:FollowerID;joinReferences:FollowedID;constraint:OnDelete:CASCADE;"`
	Followers []*User  `gorm:"many2many:subscriptions;joinForeignKey:FollowedID;joinReferences:FollowerID;"`
}

// UserSummary is the projection of a user embedded in other payloads.
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserProfile is the full profile payload: the user plus both directions of
// the follow graph.
type UserProfile struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	Followers []UserSummary `json:"followers"`
	Following []UserSummary `json:"following"`
}

// AddUser inserts a new user. A colliding api key surfaces the storage
// uniqueness violation to the caller instead of being swallowed here.
func AddUser(db *gorm.DB, name string, apiKey string) (uint, error) {
	user := User{Name: name, ApiKey: apiKey}
	if err := db.Create(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

// GetUserByAPIKey is a point lookup by hashed api key. An absent user is
// (nil, nil): the result feeds authentication, which decides how to fail.
func GetUserByAPIKey(db *gorm.DB, apiKey string) (*User, error) {
	var user User
	res := db.Where("api_key = ?", apiKey).First(&user)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &user, nil
}

// GetUserByID is a point lookup by id. An absent user is a domain error.
func GetUserByID(db *gorm.DB, userID uint) (*User, error) {
	var user User
	res := db.First(&user, "id = ?", userID)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, NewDomainError(ErrKindUserNotFound, userNotFoundMsg)
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &user, nil
}

// getUserWithFollowed reloads a user with the Followed relation hydrated.
// The association is lazily loaded by default and must be materialized
// before the collection is mutated or walked.
func getUserWithFollowed(db *gorm.DB, userID uint) (*User, error) {
	var user User
	if err := db.Preload("Followed").First(&user, "id = ?", userID).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load followed relation")
	}
	return &user, nil
}

// FollowUser makes current follow the user with targetID. Following
// yourself is rejected, so a user can never appear in its own Followed set.
func FollowUser(db *gorm.DB, current *User, targetID uint) error {
	if current.ID == targetID {
		return NewDomainError(ErrKindSelfFollow, "Cannot follow yourself")
	}
	target, err := GetUserByID(db, targetID)
	if err != nil {
		return err
	}
	follower, err := getUserWithFollowed(db, current.ID)
	if err != nil {
		return err
	}
	return db.Model(follower).Association("Followed").Append(target)
}

// UnfollowUser removes the directed edge from current to targetID.
func UnfollowUser(db *gorm.DB, current *User, targetID uint) error {
	if current.ID == targetID {
		return NewDomainError(ErrKindSelfUnfollow, "Cannot unfollow yourself")
	}
	target, err := GetUserByID(db, targetID)
	if err != nil {
		return err
	}
	follower, err := getUserWithFollowed(db, current.ID)
	if err != nil {
		return err
	}
	return db.Model(follower).Association("Followed").Delete(target)
}

// Profile loads a user with both directions of the follow graph eagerly
// populated and projects it into the profile payload.
func Profile(db *gorm.DB, userID uint) (*UserProfile, error) {
	var user User
	res := db.Preload("Followed").Preload("Followers").First(&user, "id = ?", userID)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, NewDomainError(ErrKindUserNotFound, userNotFoundMsg)
	}
	if res.Error != nil {
		return nil, res.Error
	}

	profile := UserProfile{
		ID:        user.ID,
		Name:      user.Name,
		Followers: []UserSummary{},
		Following: []UserSummary{},
	}
	for _, follower := range user.Followers {
		profile.Followers = append(profile.Followers, UserSummary{ID: follower.ID, Name: follower.Name})
	}
	for _, followed := range user.Followed {
		profile.Following = append(profile.Following, UserSummary{ID: followed.ID, Name: followed.Name})
	}
	return &profile, nil
}
