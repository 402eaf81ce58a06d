package model

import (
	"time"
)

/*

Subscription is the directed edge of the follow graph: FollowerID follows
FollowedID. Both foreign keys point at users and together form the primary
key, so one user can follow another at most once.

FollowerID: the user whose feed gains the followed user's tweets
FollowedID: the user being followed
CreatedAt: time when relation is created

*/

type Subscription struct {
	FollowerID uint `gorm:"primaryKey"`
	FollowedID uint `gorm:"primaryKey"`
	CreatedAt  time.Time
}
