package media

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// MediaService handles image assets (lesson thumbnails, profile photos)
// through the CDN.
type MediaService interface {
	// UploadImage pushes a local file into the given CDN folder and returns
	// the delivery URL and the permanent public ID.
	UploadImage(ctx context.Context, localFilePath, destFolder string) (url string, publicID string, err error)
	DeleteImage(ctx context.Context, publicID string) error
}

// MediaServiceImpl is the Cloudinary-backed MediaService.
type MediaServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewMediaService creates a new MediaServiceImpl instance.
func NewMediaService(cld *cloudinary.Cloudinary, cloudName string) MediaService {
	return &MediaServiceImpl{
		cld:       cld,
		cloudName: cloudName,
	}
}
