package domain

// DiagnosticsReport is a fresh snapshot of the engine health chain.
type DiagnosticsReport struct {
	DockerInstalled  bool   `json:"docker_installed"`
	DockerRunning    bool   `json:"docker_running"`
	ComposeAvailable bool   `json:"compose_available"`
	ComposeExists    bool   `json:"compose_exists"`
	ContainerRunning bool   `json:"container_running"`
	ServiceReachable bool   `json:"service_reachable"`
	WebURL           string `json:"web_url"`
	ComposePath      string `json:"compose_path"`
	RuntimeDir       string `json:"runtime_dir"`
	LastError        string `json:"last_error,omitempty"`
}

// PreflightCheck is one start-readiness check with its remedy.
type PreflightCheck struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	OK      bool   `json:"ok"`
	Details string `json:"details"`
	Fix     string `json:"fix"`
}

// PreflightReport aggregates start-readiness checks in execution order.
type PreflightReport struct {
	OK     bool             `json:"ok"`
	Checks []PreflightCheck `json:"checks"`
}

// Check returns the check with the given key.
func (r PreflightReport) Check(key string) (PreflightCheck, bool) {
	for _, check := range r.Checks {
		if check.Key == key {
			return check, true
		}
	}
	return PreflightCheck{}, false
}

// ChecklistItem is one onboarding milestone.
type ChecklistItem struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Done    bool   `json:"done"`
	Details string `json:"details"`
}

// OnboardingChecklist summarizes first-run progress for the UI.
type OnboardingChecklist struct {
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Items     []ChecklistItem `json:"items"`
}

// InstallGuidance points the user at the right container engine installer.
type InstallGuidance struct {
	OS         string   `json:"os"`
	InstallURL string   `json:"install_url"`
	InstallCTA string   `json:"install_cta"`
	Steps      []string `json:"steps"`
}
