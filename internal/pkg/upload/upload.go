package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tutorhub/internal/domain"
)

const MaxFileSize = 10 << 20 // 10MB

var ErrFileTooLarge = errors.New("file exceeds the 10MB limit")
var ErrInvalidType = errors.New("invalid file type, allowed: PDF, DOC, DOCX, JPG, PNG")

var allowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
}

// Saver streams uploads into per-user directories under Root. Stored
// names are uuid-based so concurrent uploads cannot collide.
type Saver struct {
	Root string
}

func NewSaver(root string) *Saver {
	return &Saver{Root: root}
}

// Save writes one multipart file for the given user and returns its
// attachment metadata. The file's declared content type is checked
// against the whitelist; size against the 10MB cap.
func (s *Saver) Save(c *gin.Context, userID int64, fh *multipart.FileHeader) (domain.OrderFile, error) {
	if fh.Size > MaxFileSize {
		return domain.OrderFile{}, ErrFileTooLarge
	}
	mimeType := fh.Header.Get("Content-Type")
	if !allowedTypes[mimeType] {
		return domain.OrderFile{}, ErrInvalidType
	}

	userDir := filepath.Join(s.Root, fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return domain.OrderFile{}, err
	}

	storedName := uuid.NewString() + filepath.Ext(fh.Filename)
	dst := filepath.Join(userDir, storedName)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return domain.OrderFile{}, err
	}

	return domain.OrderFile{
		OriginalName: fh.Filename,
		Filename:     storedName,
		Path:         fmt.Sprintf("/uploads/%d/%s", userID, storedName),
		Size:         fh.Size,
		MimeType:     mimeType,
		UploadedAt:   time.Now(),
	}, nil
}
