package video

import (
	"context"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"melodia/config"
	"melodia/models"
)

// VideoService is the lesson video library backed by the cloud drive.
type VideoService interface {
	ListVideos(ctx context.Context, prefix string) ([]models.Video, error)
	UploadVideo(ctx context.Context, r io.Reader, filename, folderID string) (*models.Video, error)
	CreateFolder(ctx context.Context, name, parentID string) (*models.DriveFolder, error)
	ListSubfolders(ctx context.Context, parentID string) ([]models.DriveFolder, error)
	FolderDetails(ctx context.Context, folderID string) (*models.DriveFolder, error)
	Health(ctx context.Context) (*models.DriveHealth, error)
}

// driveVideoService is the Google Drive VideoService.
type driveVideoService struct {
	svc          *drive.Service
	rootFolderID string
}

// NewDriveVideoService builds a Drive-backed VideoService from the configured
// service account.
func NewDriveVideoService(ctx context.Context) (VideoService, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(config.AppConfig.GoogleCredentialsFile),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, err
	}
	return &driveVideoService{
		svc:          svc,
		rootFolderID: config.AppConfig.DriveFolderID,
	}, nil
}
