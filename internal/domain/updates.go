package domain

// LauncherVersionInfo is the result of one launcher release check.
type LauncherVersionInfo struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version,omitempty"`
	UpdateAvailable bool   `json:"update_available"`
	ReleaseURL      string `json:"release_url,omitempty"`
	CheckError      string `json:"check_error,omitempty"`
}

// ImageUpdateStatus compares the local service image with the registry copy.
type ImageUpdateStatus struct {
	Image           string `json:"image"`
	LocalImageID    string `json:"local_image_id,omitempty"`
	RemoteImageID   string `json:"remote_image_id,omitempty"`
	UpdateAvailable bool   `json:"update_available"`
	CheckError      string `json:"check_error,omitempty"`
}
