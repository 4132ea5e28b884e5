// Package commands provides CLI commands for captionthis.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/app"
	"github.com/diogo/captionthis/internal/config"
	"github.com/diogo/captionthis/internal/console"
	"github.com/diogo/captionthis/internal/logging"
	"github.com/diogo/captionthis/internal/render"
	"github.com/diogo/captionthis/internal/store"
	"github.com/diogo/captionthis/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// env is the state shared by every command of one invocation
type env struct {
	deps *Dependencies
	// v layers flags over CAPTIONTHIS_* variables over config.json
	v        *viper.Viper
	cfg      config.Config
	log      *logrus.Logger
	closeLog func() error
	// logToFile is set when log output goes to the daily log file
	logToFile bool
	client   api.VisionClientInterface
}

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	e := &env{
		deps:     deps.withDefaults(),
		v:        viper.New(),
		cfg:      config.DefaultConfig(),
		log:      logging.Discard(),
		closeLog: func() error { return nil },
	}

	cmd := &cobra.Command{
		Use:   "captionthis",
		Short: "Caption videos and images with a vision API",
		Long: `captionthis lists, uploads, deletes and captions the videos and images
stored in a vision API library. Without a subcommand it opens an
interactive menu.

Examples:
  captionthis                          Open the interactive menu
  captionthis --plain                  Use the numbered console menu
  captionthis videos list              List videos in the library
  captionthis videos caption <id>      Caption a video
  captionthis images caption <url>     Caption an image
  captionthis pipeline clip.mp4        Upload, wait for indexing and caption
  captionthis auth set-key             Store the API key in the keyring`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  e.setup,
		PersistentPostRunE: e.teardown,
		RunE:               e.runInteractive,
	}
	cmd.SetOut(e.deps.Out)
	cmd.SetErr(e.deps.Err)

	cmd.Flags().Bool("version", false, "Show version and exit")

	flags := cmd.PersistentFlags()
	flags.Bool("plain", false, "Use the plain numbered console menu instead of the TUI")
	flags.Bool("verbose", false, "Log debug details (to the log file only while the menus run)")
	flags.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.Bool("log-json", false, "Write logs as JSON")

	lo.Must0(e.v.BindPFlag("plain", flags.Lookup("plain")))
	lo.Must0(e.v.BindPFlag("verbose", flags.Lookup("verbose")))
	lo.Must0(e.v.BindPFlag("log_level", flags.Lookup("log-level")))
	lo.Must0(e.v.BindPFlag("log_json", flags.Lookup("log-json")))
	e.v.SetEnvPrefix("captionthis")
	e.v.AutomaticEnv()

	lo.Must0(cmd.RegisterFlagCompletionFunc("log-level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"trace", "debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	}))

	cmd.AddCommand(
		newVideosCmd(e),
		newImagesCmd(e),
		newPipelineCmd(e),
		newAuthCmd(e),
		newConfigCmd(e),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command
func Execute() {
	cc.Init(&cc.Config{
		RootCmd:       rootCmd,
		Headings:      cc.HiCyan + cc.Bold + cc.Underline,
		Commands:      cc.HiYellow + cc.Bold,
		Example:       cc.Italic,
		ExecName:      cc.Bold,
		Flags:         cc.Bold,
		FlagsDataType: cc.Italic + cc.HiBlue,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

// setup loads the config and the logger before any command runs
func (e *env) setup(cmd *cobra.Command, args []string) error {
	cfg, err := e.deps.LoadConfig()
	if err != nil {
		fmt.Fprintln(e.deps.Err, formatErrorMessage(err, "Using default settings"))
	}
	e.cfg = cfg

	e.v.SetDefault("plain", cfg.Frontend == config.FrontendConsole)
	e.v.SetDefault("verbose", cfg.Verbose)
	e.v.SetDefault("log_level", cfg.LogLevel)

	var logDir string
	if cfg.LogFile {
		if logDir, err = config.GetLogDir(); err != nil {
			return err
		}
	}

	logger, closer, err := logging.Setup(logging.Options{
		Level:   e.v.GetString("log_level"),
		Verbose: e.v.GetBool("verbose"),
		JSON:    e.v.GetBool("log_json"),
		Dir:     logDir,
		Output:  e.deps.Err,
		Fs:      e.deps.Fs,
	})
	if err != nil {
		return err
	}
	e.log = logger
	e.closeLog = closer
	e.logToFile = logDir != ""
	e.log.WithField("command", cmd.CommandPath()).Debug("starting")
	return nil
}

func (e *env) teardown(cmd *cobra.Command, args []string) error {
	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
	return e.closeLog()
}

// service wires the API client, caption store and clipboard together
func (e *env) service() (*app.Service, error) {
	if e.client == nil {
		client := e.deps.Client
		if client == nil {
			key, source, err := e.deps.Keys.Load()
			if err != nil {
				return nil, err
			}
			e.log.WithField("source", source.String()).Debug("loaded API key")

			vc, err := api.NewClient(api.ClientConfig{
				APIKey:         key,
				BaseURL:        e.cfg.BaseURL,
				ChatURL:        e.cfg.ChatURL,
				TimeoutSeconds: e.cfg.TimeoutSeconds,
			}, api.WithLogger(e.log), api.WithFs(e.deps.Fs))
			if err != nil {
				return nil, err
			}
			client = vc
		}
		e.client = client
	}

	opts := []app.Option{app.WithLogger(e.log)}
	if e.cfg.CopyToClipboard {
		opts = append(opts, app.WithClipboard(e.deps.Clipboard))
	}
	return app.New(e.client, store.NewCaptionStore(e.deps.Fs, e.cfg.DataDir), opts...), nil
}

// renderOptions sizes caption rendering to the output
func (e *env) renderOptions() render.Options {
	opts := render.OptionsFromConfig(e.cfg)
	if width := terminalWidth(e.deps.Out); width-4 < opts.Width {
		opts = opts.WithWidth(max(width-4, 20))
	}
	return opts
}

func (e *env) runInteractive(cmd *cobra.Command, args []string) error {
	if lo.Must(cmd.Flags().GetBool("version")) {
		printVersion(cmd)
		return nil
	}

	svc, err := e.service()
	if err != nil {
		return err
	}

	// The front ends own the terminal and report failures themselves. Logs
	// only reach the log file while they run.
	if !e.logToFile {
		e.log.SetOutput(io.Discard)
	}

	if e.v.GetBool("plain") {
		return console.New(svc, console.Options{
			Prompter: e.deps.Prompter,
			Out:      e.deps.Out,
			Fs:       e.deps.Fs,
			Log:      e.log,
			Render:   e.renderOptions(),
			Style:    e.cfg.Style(),
			WorkDir:  e.deps.WorkDir,
		}).Run(cmd.Context())
	}

	if render.SetTUITheme(e.cfg.TUITheme) {
		tui.UpdateTheme()
	}
	return e.deps.TUI.Run(svc, tui.Options{
		Render:       render.OptionsFromConfig(e.cfg),
		Fs:           e.deps.Fs,
		StartDir:     e.deps.WorkDir,
		DefaultStyle: e.cfg.Style(),
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd)
		},
	}
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "captionthis %s (built %s)\n", Version, BuildTime)
}
