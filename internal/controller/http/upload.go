package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learnhub/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 5 << 20 // 5MB

// saveTempUpload stores an optional multipart image field in the local
// upload dir before the orchestrator runs; the orchestrator owns removal.
// A missing field is not an error and yields an empty path.
func saveTempUpload(c *gin.Context, uploadDir, field string) (path string, contentType string, err error) {
	file, formErr := c.FormFile(field)
	if formErr != nil {
		return "", "", nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		return "", "", apperror.Validation("Invalid file type, allowed: jpeg, jpg, png, gif")
	}

	if file.Size > maxUploadSize {
		return "", "", apperror.Validation("File exceeds the 5MB size limit.")
	}

	if mkErr := os.MkdirAll(uploadDir, 0o755); mkErr != nil {
		return "", "", apperror.Upload("Failed to store uploaded file", mkErr)
	}

	buf := make([]byte, 16)
	if _, randErr := rand.Read(buf); randErr != nil {
		return "", "", apperror.Upload("Failed to store uploaded file", randErr)
	}

	path = filepath.Join(uploadDir, fmt.Sprintf("user-%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext))
	if saveErr := c.SaveUploadedFile(file, path); saveErr != nil {
		return "", "", apperror.Upload("Failed to store uploaded file", saveErr)
	}

	contentType = file.Header.Get("Content-Type")
	return path, contentType, nil
}
