package model

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

/*

Media is an uploaded attachment. The binary content lives on disk under the
media directory; the row only records the generated file key.

Id: primary key
CreatedAt: time when entity is created

File: generated unique file name ("<uuid>.<ext>"), distinct from the
      uploaded name

Tweets: tweets this media is attached to, "many-to-many" relation

*/

type Media struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	File      string
	Tweets    []*Tweet `gorm:"many2many:tweets_media;"`
}

// AddMedia inserts a media row for an already stored file and returns the
// generated id.
func AddMedia(db *gorm.DB, file string) (uint, error) {
	media := Media{File: file}
	if err := db.Create(&media).Error; err != nil {
		return 0, errors.Wrap(err, "failed to insert media")
	}
	return media.ID, nil
}

// GetAllMedia resolves every requested media id in one query. If the
// resolved count does not equal the requested count the whole set is
// rejected.
func GetAllMedia(db *gorm.DB, mediaIDs []uint) ([]*Media, error) {
	var media []*Media
	if err := db.Where("id IN ?", mediaIDs).Find(&media).Error; err != nil {
		return nil, err
	}
	if len(media) != len(mediaIDs) {
		return nil, NewDomainError(ErrKindMediaNotFound, "No media objects found")
	}
	return media, nil
}

// DeleteMediaByIDs removes media rows after their backing files are gone.
func DeleteMediaByIDs(db *gorm.DB, mediaIDs []uint) error {
	return db.Where("id IN ?", mediaIDs).Delete(&Media{}).Error
}
