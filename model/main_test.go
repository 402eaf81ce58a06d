package model_test

import (
	"path/filepath"
	"testing"

	"github.com/Luismorlan/tweetmux/model"
	"github.com/Luismorlan/tweetmux/storage"
	"github.com/Luismorlan/tweetmux/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	id, err := model.AddUser(db, name, utils.HashAPIKey(name+"-key"))
	require.NoError(t, err)
	user, err := model.GetUserByID(db, id)
	require.NoError(t, err)
	return user
}

func createTweet(t *testing.T, db *gorm.DB, author *model.User, content string, mediaIDs []uint) uint {
	t.Helper()
	id, err := model.AddTweet(db, author, content, mediaIDs)
	require.NoError(t, err)
	return id
}

func newMediaStore(t *testing.T) *storage.LocalMediaStore {
	t.Helper()
	store, err := storage.NewLocalMediaStore(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)
	return store
}

func requireDomainKind(t *testing.T, err error, kind model.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	require.Equal(t, kind, domainErr.Kind)
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(value).Count(&count).Error)
	return count
}
