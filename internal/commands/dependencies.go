package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/config"
	"github.com/diogo/captionthis/internal/console"
	"github.com/diogo/captionthis/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	Run(svc tui.AssetService, opts tui.Options) error
	RunSettings(cfg config.Config, info tui.SettingsInfo) (config.Config, error)
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the vision API client. When nil one is built from the API key.
	Client api.VisionClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Prompter asks questions on the plain console and for auth set-key.
	Prompter console.Prompter

	// Keys resolves the API key.
	Keys *config.KeyLoader

	// Fs backs caption files, uploads and log files.
	Fs afero.Fs

	// Out and Err receive command output and progress messages.
	Out io.Writer
	Err io.Writer

	LoadConfig func() (config.Config, error)
	SaveConfig func(config.Config) error
	ConfigPath func() (string, error)

	// Clipboard is used when copy_to_clipboard is on.
	Clipboard func(string) error

	// WorkDir is where relative upload paths start
	WorkDir string
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) Run(svc tui.AssetService, opts tui.Options) error {
	return tui.Run(svc, opts)
}

func (d *DefaultTUI) RunSettings(cfg config.Config, info tui.SettingsInfo) (config.Config, error) {
	return tui.RunSettings(cfg, info)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return (&Dependencies{}).withDefaults()
}

// withDefaults fills every nil field with its production implementation
func (d *Dependencies) withDefaults() *Dependencies {
	if d == nil {
		d = &Dependencies{}
	}
	if d.TUI == nil {
		d.TUI = &DefaultTUI{}
	}
	if d.Prompter == nil {
		d.Prompter = console.NewSurveyPrompter()
	}
	if d.Keys == nil {
		d.Keys = config.NewKeyLoader()
	}
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Err == nil {
		d.Err = os.Stderr
	}
	if d.LoadConfig == nil {
		d.LoadConfig = config.LoadConfig
	}
	if d.SaveConfig == nil {
		d.SaveConfig = config.SaveConfig
	}
	if d.ConfigPath == nil {
		d.ConfigPath = config.GetConfigPath
	}
	if d.Clipboard == nil {
		d.Clipboard = clipboard.WriteAll
	}
	if d.WorkDir == "" {
		if wd, err := os.Getwd(); err == nil {
			d.WorkDir = wd
		} else {
			d.WorkDir = "."
		}
	}
	return d
}
