package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const DefaultMediaDir = "saved_photos"

// MediaStore persists raw attachment bytes outside the database. Rows in
// the media table reference the returned key.
type MediaStore interface {
	Save(fileName string, data []byte) (key string, err error)
	Remove(key string) error
	GetUrlFromKey(key string) string
}

// LocalMediaStore keeps media as flat files in a single directory, each
// named by a generated unique token plus the uploaded file's extension.
type LocalMediaStore struct {
	folderName string
}

func NewLocalMediaStore(folderName string) (*LocalMediaStore, error) {
	if err := os.MkdirAll(folderName, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "failed to create media folder")
	}
	return &LocalMediaStore{folderName: folderName}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *LocalMediaStore) Dir() string {
	return s.folderName
}

func (s *LocalMediaStore) Save(fileName string, data []byte) (string, error) {
	key := uuid.New().String() + extWithDot(fileName)
	if err := os.WriteFile(filepath.Join(s.folderName, key), data, 0644); err != nil {
		return "", errors.Wrap(err, "failed to write media file")
	}
	return key, nil
}

func (s *LocalMediaStore) Remove(key string) error {
	return os.Remove(filepath.Join(s.folderName, key))
}

func (s *LocalMediaStore) GetUrlFromKey(key string) string {
	return fmt.Sprintf("/images/%s", key)
}

// extWithDot extracts the extension of the uploaded name, defaulting to
// .jpg when the name carries none.
func extWithDot(fileName string) string {
	ext := filepath.Ext(fileName)
	if ext == "" {
		return ".jpg"
	}
	return ext
}
