package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// CoverUploadDir is where cover images are written, relative to the
// working directory. The returned public path is served statically.
const CoverUploadDir = "uploads/covers"

// AllowedImageTypes defines the allowed image file extensions
var AllowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ValidateImageFile checks if the uploaded file is a valid cover image
func ValidateImageFile(file *multipart.FileHeader) error {
	if file.Size > 5*1024*1024 {
		return fmt.Errorf("file size exceeds 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedImageTypes[ext] {
		return fmt.Errorf("invalid file type. Allowed types: jpg, jpeg, png, gif")
	}

	return nil
}

// SaveCoverImage stores an uploaded cover under a generated filename and
// returns the public path to reference it by.
func SaveCoverImage(file *multipart.FileHeader) (string, error) {
	if err := ValidateImageFile(file); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := uuid.New().String() + ext

	if err := os.MkdirAll(CoverUploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %v", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(CoverUploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return "/" + CoverUploadDir + "/" + filename, nil
}
