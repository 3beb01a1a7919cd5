package main

import (
	"os"

	"github.com/sessionkit/handoff/cmd/handoff"
	"github.com/sessionkit/handoff/pkg/config"
	"github.com/sessionkit/handoff/pkg/output"
)

func main() {
	rootCmd := handoff.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red when stderr is a terminal
		r, rerr := output.NewRenderer(os.Stderr, !output.UseColor(config.ColorAuto, os.Stderr))
		if rerr == nil {
			_ = r.RenderError(err)
		} else {
			_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
