package handoff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/sessionkit/handoff/internal/version"
	"github.com/sessionkit/handoff/pkg/config"
	"github.com/sessionkit/handoff/pkg/errors"
	"github.com/sessionkit/handoff/pkg/filesystem"
	"github.com/sessionkit/handoff/pkg/installer"
	"github.com/sessionkit/handoff/pkg/logging"
	"github.com/sessionkit/handoff/pkg/output"
	"github.com/sessionkit/handoff/pkg/paths"
	"github.com/sessionkit/handoff/pkg/session"
	"github.com/sessionkit/handoff/pkg/templates"
	"github.com/sessionkit/handoff/pkg/types"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbosity  int
	dryRun     bool
	projectDir string
	color      string
}

// installFlags are accepted by the root command and by install.
type installFlags struct {
	templatesDir string
	threshold    int
	maxContext   int
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalFlags{}
	rootInstall := &installFlags{}

	rootCmd := &cobra.Command{
		Use:     "handoff",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgInstallExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, g, rootInstall)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&g.projectDir, "project-dir", "C", "", MsgFlagProjectDir)
	rootCmd.PersistentFlags().StringVar(&g.color, "color", "", MsgFlagColor)
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{config.ColorAuto, config.ColorAlways, config.ColorNever}, cobra.ShellCompDirectiveNoFileComp))
	addInstallFlags(rootCmd, rootInstall)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newShowCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func addInstallFlags(cmd *cobra.Command, f *installFlags) {
	cmd.Flags().StringVar(&f.templatesDir, "templates", "", MsgFlagTemplates)
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, MsgFlagThreshold)
	cmd.Flags().IntVar(&f.maxContext, "max-context", 0, MsgFlagMaxContext)
	_ = cmd.MarkFlagDirname("templates")
}

// commandEnv is what every project command needs before doing work.
type commandEnv struct {
	paths    *paths.Paths
	config   *config.Config
	renderer *output.Renderer
	color    bool
}

func setup(cmd *cobra.Command, g *globalFlags, overrides map[string]interface{}) (*commandEnv, error) {
	p, err := paths.New(g.projectDir)
	if err != nil {
		return nil, err
	}

	if overrides == nil {
		overrides = map[string]interface{}{}
	}
	if g.color != "" {
		overrides["output.color"] = g.color
	}

	cfg, err := config.LoadConfiguration(config.LoadOptions{
		ProjectConfigPath: p.ConfigPath(),
		Overrides:         overrides,
	})
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	color := output.UseColor(cfg.Output.Color, out)
	r, err := output.NewRenderer(out, !color)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create renderer")
	}

	return &commandEnv{paths: p, config: cfg, renderer: r, color: color}, nil
}

func newInstallCmd(g *globalFlags) *cobra.Command {
	f := &installFlags{}
	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, g, f)
		},
	}
	addInstallFlags(cmd, f)
	return cmd
}

func runInstall(cmd *cobra.Command, g *globalFlags, f *installFlags) error {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("threshold") {
		overrides["hooks.threshold"] = f.threshold
	}
	if cmd.Flags().Changed("max-context") {
		overrides["hooks.max_context"] = f.maxContext
	}

	env, err := setup(cmd, g, overrides)
	if err != nil {
		return err
	}

	src, err := templates.Source(f.templatesDir)
	if err != nil {
		return err
	}

	log.Info().
		Str("project", env.paths.ProjectDir()).
		Bool("dryRun", g.dryRun).
		Str("templates", f.templatesDir).
		Msg("Installing")

	if env.config.Output.Banner {
		if err := env.renderer.RenderBanner(version.Version, env.paths.ProjectDir()); err != nil {
			return err
		}
	}

	var fsys types.FS
	if g.dryRun {
		fsys = filesystem.NewDryRunFS()
	} else {
		release, err := installer.Lock(cmd.Context(), env.paths.LockPath())
		if err != nil {
			return err
		}
		defer release()
		fsys = filesystem.NewOS()
	}

	result, runErr := installer.Run(installer.Options{
		Paths:     env.paths,
		FS:        fsys,
		Templates: src,
		Config:    env.config,
		DryRun:    g.dryRun,
	})

	if err := env.renderer.RenderInstall(result); err != nil {
		return err
	}
	if runErr == nil || errors.IsErrorCode(runErr, errors.ErrPartialInstall) {
		if err := env.renderer.RenderSummary(result); err != nil {
			return err
		}
	}

	return runErr
}

func newStatusCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, g, nil)
			if err != nil {
				return err
			}

			result, statusErr := installer.Status(filesystem.NewOS(), env.paths, env.config)
			if err := env.renderer.RenderStatus(result); err != nil {
				return err
			}
			return statusErr
		},
	}
}

func newShowCmd(g *globalFlags) *cobra.Command {
	var (
		raw     bool
		section string
	)

	cmd := &cobra.Command{
		Use:     "show",
		Short:   MsgShowShort,
		Long:    MsgShowLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, g, nil)
			if err != nil {
				return err
			}

			path := env.paths.ActivePath()
			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Newf(errors.ErrNotFound, MsgErrNoHandoff, env.paths.Rel(path))
				}
				return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
			}

			parsed := session.Parse(data)
			out := cmd.OutOrStdout()

			content := string(data)
			if section != "" {
				body, ok := parsed.Section(section)
				if !ok {
					return errors.Newf(errors.ErrNotFound, MsgSectionMissing, section, env.paths.Rel(path))
				}
				content = "## " + section + "\n\n" + body + "\n"
			} else if parsed.IsPlaceholder() {
				return env.renderer.RenderMessage("Muted", MsgNoSession)
			}

			if raw {
				_, err := fmt.Fprint(out, content)
				return err
			}
			_, err = fmt.Fprint(out, session.NewRenderer(env.color, 0).Render(content))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, MsgFlagRaw)
	cmd.Flags().StringVarP(&section, "section", "s", "", MsgFlagSection)
	_ = cmd.RegisterFlagCompletionFunc("section", cobra.FixedCompletions(
		session.SectionTitles, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return err
			}

			env, err := setup(cmd, g, nil)
			if err != nil {
				return err
			}
			data, err := env.config.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man [dir]",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
			}

			header := &doc.GenManHeader{
				Title:   "HANDOFF",
				Section: "1",
				Source:  "handoff " + version.Version,
				Manual:  "handoff manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to generate man pages")
			}

			abs, _ := filepath.Abs(dir)
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, abs)
			return nil
		},
	}
}
