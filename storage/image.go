package storage

import (
	"bytes"
	"image"

	// Registered decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// IsImage reports whether data decodes as one of the supported image
// formats. Only the header is inspected; the bytes are stored as-is.
func IsImage(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}
