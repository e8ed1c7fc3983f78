package pkg

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const UploadDir = "./uploads"

// SaveAvatar stores an uploaded avatar under the user's directory and
// returns the path.
func SaveAvatar(file *multipart.FileHeader, userID uuid.UUID) (string, error) {
	userDir := filepath.Join(UploadDir, "avatars", userID.String())
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create avatar directory: %w", err)
	}

	filename := filepath.Base(file.Filename)
	dstPath := filepath.Join(userDir, filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("error creating destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("error copying file contents: %w", err)
	}

	return dstPath, nil
}

// DeleteAvatars removes all stored avatars for a user.
func DeleteAvatars(userID uuid.UUID) error {
	return os.RemoveAll(filepath.Join(UploadDir, "avatars", userID.String()))
}
