package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/sessionkit/handoff/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/sessionkit/handoff/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/sessionkit/handoff/internal/version.Date={{.Date}}
)
