package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"google.golang.org/api/drive/v3"

	"melodia/models"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Drive file IDs are alphanumeric with _ and -.
var fileIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)

// PreviewURL builds the embeddable player URL for a Drive file ID.
// It rejects malformed IDs so untrusted input cannot shape the URL.
func PreviewURL(fileID string) (string, error) {
	if !fileIDPattern.MatchString(fileID) {
		return "", errors.New("invalid drive file ID format")
	}
	return fmt.Sprintf("https://drive.google.com/file/d/%s/preview", fileID), nil
}

func (s *driveVideoService) ListVideos(ctx context.Context, prefix string) ([]models.Video, error) {
	if s.rootFolderID == "" {
		return nil, errors.New("drive folder ID not configured")
	}

	query := fmt.Sprintf("'%s' in parents and trashed=false and mimeType contains 'video/'", s.rootFolderID)
	if prefix != "" {
		query += fmt.Sprintf(" and name contains '%s'", prefix)
	}

	res, err := s.svc.Files.List().
		Q(query).
		Fields("files(id, name, mimeType, webViewLink, webContentLink)").
		OrderBy("name").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive: failed to list videos: %w", err)
	}

	videos := make([]models.Video, 0, len(res.Files))
	for _, f := range res.Files {
		url, err := PreviewURL(f.Id)
		if err != nil {
			continue
		}
		videos = append(videos, models.Video{
			Name:        f.Name,
			Key:         f.Id,
			URL:         url,
			DownloadURL: f.WebContentLink,
		})
	}
	return videos, nil
}

func (s *driveVideoService) UploadVideo(ctx context.Context, r io.Reader, filename, folderID string) (*models.Video, error) {
	if folderID == "" {
		folderID = s.rootFolderID
	}
	if folderID == "" {
		return nil, errors.New("drive folder ID not configured")
	}

	meta := &drive.File{
		Name:    filename,
		Parents: []string{folderID},
	}
	created, err := s.svc.Files.Create(meta).
		Media(r).
		SupportsAllDrives(true).
		Fields("id, name, webContentLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive: failed to upload video: %w", err)
	}

	url, err := PreviewURL(created.Id)
	if err != nil {
		return nil, err
	}
	return &models.Video{
		Name:        created.Name,
		Key:         created.Id,
		URL:         url,
		DownloadURL: created.WebContentLink,
	}, nil
}

func (s *driveVideoService) CreateFolder(ctx context.Context, name, parentID string) (*models.DriveFolder, error) {
	if parentID == "" {
		parentID = s.rootFolderID
	}
	meta := &drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{parentID},
	}
	created, err := s.svc.Files.Create(meta).
		SupportsAllDrives(true).
		Fields("id, name, createdTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive: failed to create folder: %w", err)
	}
	return &models.DriveFolder{ID: created.Id, Name: created.Name, CreatedTime: created.CreatedTime}, nil
}

func (s *driveVideoService) ListSubfolders(ctx context.Context, parentID string) ([]models.DriveFolder, error) {
	if parentID == "" {
		parentID = s.rootFolderID
	}
	query := fmt.Sprintf("'%s' in parents and trashed=false and mimeType = '%s'", parentID, folderMimeType)
	res, err := s.svc.Files.List().
		Q(query).
		Fields("files(id, name, createdTime)").
		OrderBy("name").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive: failed to list folders: %w", err)
	}

	folders := make([]models.DriveFolder, 0, len(res.Files))
	for _, f := range res.Files {
		folders = append(folders, models.DriveFolder{ID: f.Id, Name: f.Name, CreatedTime: f.CreatedTime})
	}
	return folders, nil
}

func (s *driveVideoService) FolderDetails(ctx context.Context, folderID string) (*models.DriveFolder, error) {
	f, err := s.svc.Files.Get(folderID).
		Fields("id, name, mimeType, createdTime").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive: failed to fetch folder: %w", err)
	}
	if f.MimeType != folderMimeType {
		return nil, errors.New("drive: not a folder")
	}
	return &models.DriveFolder{ID: f.Id, Name: f.Name, CreatedTime: f.CreatedTime}, nil
}

func (s *driveVideoService) Health(ctx context.Context) (*models.DriveHealth, error) {
	about, err := s.svc.About.Get().
		Fields("user, storageQuota").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive: health check failed: %w", err)
	}

	health := &models.DriveHealth{Status: "healthy"}
	if about.User != nil {
		health.User = about.User.EmailAddress
	}
	if about.StorageQuota != nil {
		health.StorageUsed = fmt.Sprintf("%.2f GB", float64(about.StorageQuota.Usage)/(1<<30))
		if about.StorageQuota.Limit > 0 {
			health.StorageLimit = fmt.Sprintf("%.2f TB", float64(about.StorageQuota.Limit)/(1<<40))
		}
	}
	return health, nil
}
