package authoring

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/octabyte/bm-social/api"
	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/errs"
)

// MediaFile is a locally selected file waiting to be uploaded.
type MediaFile struct {
	Name    string
	Content []byte
}

func OpenMediaFile(path string) (MediaFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return MediaFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return MediaFile{Name: filepath.Base(path), Content: content}, nil
}

// ContentType sniffs the media type from the file content.
func (m MediaFile) ContentType() string {
	return mimetype.Detect(m.Content).String()
}

func (m MediaFile) part() api.MediaPart {
	return api.MediaPart{Name: m.Name, ContentType: m.ContentType(), Content: bytes.NewReader(m.Content)}
}

// checkSelection enforces the per-mode count limit and the content type of
// every file.
func checkSelection(isVideo bool, files []MediaFile) error {
	if isVideo && len(files) > enums.MaxVideosPerPost {
		return errs.Validation(fieldMediaFiles, MsgVideoLimit)
	}
	if !isVideo && len(files) > enums.MaxImagesPerPost {
		return errs.Validation(fieldMediaFiles, MsgImageLimit)
	}

	for _, file := range files {
		contentType := file.ContentType()
		switch {
		case isVideo && !strings.HasPrefix(contentType, "video/"):
			return errs.Validation(fieldMediaFiles, fmt.Sprintf("%s is not a video", file.Name))
		case !isVideo && !strings.HasPrefix(contentType, "image/"):
			return errs.Validation(fieldMediaFiles, fmt.Sprintf("%s is not an image", file.Name))
		}
	}
	return nil
}
