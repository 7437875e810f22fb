package domain

// OperationStatus tracks a launcher operation triggered from the GUI.
type OperationStatus string

const (
	OperationStatusIdle    OperationStatus = "idle"
	OperationStatusRunning OperationStatus = "running"
	OperationStatusDone    OperationStatus = "done"
	OperationStatusFailed  OperationStatus = "failed"
)

// Settings contains user-editable launcher configuration.
type Settings struct {
	HostPort      uint16 `json:"host_port" validate:"required"`
	Image         string `json:"image" validate:"notblank,lowercase_ascii,no_whitespace"`
	ContainerName string `json:"container_name" validate:"notblank,container_name"`
	ConfigDir     string `json:"config_dir" validate:"notblank"`
	DataDir       string `json:"data_dir" validate:"notblank"`
	DownloadsDir  string `json:"downloads_dir" validate:"notblank"`
	LogsDir       string `json:"logs_dir" validate:"notblank"`
	TokensDir     string `json:"tokens_dir" validate:"notblank"`
}

// Mount pairs a configured host directory with its fixed container target.
type Mount struct {
	Field  string
	Source string
	Target string
}

// Mounts lists the five bind mounts in render order.
func (s Settings) Mounts() []Mount {
	return []Mount{
		{Field: "config_dir", Source: s.ConfigDir, Target: "/config"},
		{Field: "data_dir", Source: s.DataDir, Target: "/data"},
		{Field: "downloads_dir", Source: s.DownloadsDir, Target: "/downloads"},
		{Field: "logs_dir", Source: s.LogsDir, Target: "/logs"},
		{Field: "tokens_dir", Source: s.TokensDir, Target: "/tokens"},
	}
}

// Operation stores the current operation identity and lifecycle status.
type Operation struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Status OperationStatus `json:"status"`
}
