package models

// Video is one file in the Drive lesson library.
type Video struct {
	Name        string `json:"name"`
	Key         string `json:"key"` // Drive file ID
	URL         string `json:"url"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// DriveFolder is a folder in the Drive lesson library.
type DriveFolder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
}

// DriveHealth reports connectivity and quota of the Drive account.
type DriveHealth struct {
	Status       string `json:"status"`
	User         string `json:"user,omitempty"`
	StorageUsed  string `json:"storageUsed,omitempty"`
	StorageLimit string `json:"storageLimit,omitempty"`
}
