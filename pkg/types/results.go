package types

// StepStatus classifies a single line of installer output.
type StepStatus string

const (
	// StepOK marks a completed step (rendered with a check mark)
	StepOK StepStatus = "ok"
	// StepFail marks a step that did not reach the expected state
	StepFail StepStatus = "fail"
	// StepInfo marks an informational line
	StepInfo StepStatus = "info"
)

// Step is one reported outcome within a section of the install pipeline.
type Step struct {
	Section string     `json:"section"`
	Status  StepStatus `json:"status"`
	Message string     `json:"message"`
}

// Preserved holds the hook defaults carried over from a previous installation.
// Empty strings mean the value was not found.
type Preserved struct {
	Threshold  string `json:"threshold,omitempty"`
	MaxContext string `json:"maxContext,omitempty"`
}

// Verification counts the artifacts found after installation.
type Verification struct {
	Commands      int `json:"commands"`
	TotalCommands int `json:"totalCommands"`
	Hooks         int `json:"hooks"`
	TotalHooks    int `json:"totalHooks"`
}

// Complete reports whether every expected command and hook is present.
func (v Verification) Complete() bool {
	return v.Commands == v.TotalCommands && v.Hooks == v.TotalHooks
}

// InstallResult holds the result of the 'install' command.
type InstallResult struct {
	ProjectDir    string       `json:"projectDir"`
	Reinstall     bool         `json:"reinstall"`
	DryRun        bool         `json:"dryRun"`
	Preserved     Preserved    `json:"preserved"`
	Steps         []Step       `json:"steps"`
	Verification  Verification `json:"verification"`
	LegacyRemoved int          `json:"legacyRemoved"`
	FilesWritten  []string     `json:"filesWritten"`
}

// Add appends a step to the result.
func (r *InstallResult) Add(section string, status StepStatus, message string) {
	r.Steps = append(r.Steps, Step{Section: section, Status: status, Message: message})
}

// StatusCheck is one line of the 'status' report.
type StatusCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// StatusResult holds the result of the 'status' command.
type StatusResult struct {
	ProjectDir   string        `json:"projectDir"`
	Installed    bool          `json:"installed"`
	Verification Verification  `json:"verification"`
	Checks       []StatusCheck `json:"checks"`
	Threshold    string        `json:"threshold,omitempty"`
	MaxContext   string        `json:"maxContext,omitempty"`
}
