package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// SaveUpload stores an uploaded file under dir/subdir and returns the opaque
// reference the caller should persist. Only the reference is ever stored in
// the ledger records, so swapping in an external blob store later only means
// replacing this helper.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, dir, subdir string) (string, error) {
	target := filepath.Join(dir, subdir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	ref := filepath.Join(target, filename)
	if err := c.SaveUploadedFile(file, ref); err != nil {
		return "", err
	}

	return ref, nil
}
