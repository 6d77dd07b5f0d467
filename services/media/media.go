package media

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadImage uploads a file to Cloudinary into the specified folder.
func (s *MediaServiceImpl) UploadImage(ctx context.Context, localFilePath, destFolder string) (string, string, error) {
	uploadParams := uploader.UploadParams{
		Folder: destFolder,
	}
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploadParams)
	if err != nil {
		return "", "", fmt.Errorf("MediaServiceImpl: failed to upload image: %w", err)
	}
	if result.PublicID == "" {
		return "", "", fmt.Errorf("MediaServiceImpl: no public ID returned")
	}
	return result.SecureURL, result.PublicID, nil
}

// DeleteImage deletes a file from Cloudinary given its public ID.
func (s *MediaServiceImpl) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("MediaServiceImpl: failed to delete image: %w", err)
	}
	return nil
}
