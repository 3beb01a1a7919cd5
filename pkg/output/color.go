package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sessionkit/handoff/pkg/config"
)

// UseColor decides whether output to w should be styled. mode is one of the
// config color modes; in auto mode that means w is a terminal and NO_COLOR
// is unset.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
