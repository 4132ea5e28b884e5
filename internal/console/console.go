// Package console provides the plain numbered-menu front end.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/diogo/captionthis/internal/app"
	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
	"github.com/diogo/captionthis/internal/render"
)

// Service is the part of app.Service the console drives
type Service interface {
	ListAssets(ctx context.Context, kind models.AssetKind) (*models.AssetList, error)
	CaptionLocator(ctx context.Context, kind models.AssetKind, locator string, style models.PromptStyle) (*app.CaptionOutcome, error)
	Upload(ctx context.Context, kind models.AssetKind, path string) (*models.UploadOutcome, error)
	DeleteVideo(ctx context.Context, id string) (*models.UploadOutcome, error)
}

const menu = `
╔════════════════════════════════════════╗
║         Caption This - Main Menu       ║
╠════════════════════════════════════════╣
║ 1. List videos                         ║
║ 2. Caption a video by ID               ║
║ 3. Upload a video                      ║
║  ------------------------------------  ║
║ 4. List images                         ║
║ 5. Caption an image by URL             ║
║ 6. Upload an image                     ║
║  ------------------------------------  ║
║ 7. Delete a video by ID                ║
║  ------------------------------------  ║
║ x. Exit                                ║
╚════════════════════════════════════════╝`

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	captionStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)
)

// Options configures a Console
type Options struct {
	Prompter Prompter
	Out      io.Writer
	Fs       afero.Fs
	Log      logrus.FieldLogger
	Render   render.Options
	// Style is preselected when asking for a caption style
	Style models.PromptStyle
	// WorkDir is shown before upload prompts
	WorkDir string
}

// Console runs the numbered menu loop
type Console struct {
	svc     Service
	prompt  Prompter
	out     io.Writer
	fs      afero.Fs
	log     logrus.FieldLogger
	render  render.Options
	style   models.PromptStyle
	workDir string
	width   int
	tty     bool
}

// New creates a Console
func New(svc Service, opts Options) *Console {
	c := &Console{
		svc:     svc,
		prompt:  opts.Prompter,
		out:     opts.Out,
		fs:      opts.Fs,
		log:     opts.Log,
		render:  opts.Render,
		style:   opts.Style,
		workDir: opts.WorkDir,
		width:   80,
	}
	if c.prompt == nil {
		c.prompt = NewSurveyPrompter()
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	if c.render.Width == 0 {
		c.render = render.DefaultOptions()
	}
	if c.workDir == "" {
		c.workDir, _ = os.Getwd()
	}

	if f, ok := c.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.tty = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			c.width = w
		}
	}
	if c.render.Width > c.width-4 {
		c.render = c.render.WithWidth(max(c.width-4, 20))
	}
	return c
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...any) {
	_, _ = fmt.Fprintln(c.out, args...)
}

// Run shows the menu until the user exits or ctx is cancelled
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.println(menu)
		choice, err := c.prompt.Input("Select an option (1-7):")
		if errors.Is(err, ErrAborted) {
			c.println("\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		choice = strings.ToLower(strings.TrimSpace(choice))
		if choice == "x" {
			c.println("\nGoodbye!")
			return nil
		}

		if err := c.dispatch(ctx, choice); err != nil {
			if errors.Is(err, ErrAborted) {
				c.println()
			} else {
				c.log.WithError(err).WithField("option", choice).Error("menu action failed")
				c.printError(err)
			}
		}

		if _, err := c.prompt.Input("Press Enter to continue..."); errors.Is(err, ErrAborted) {
			c.println("\nGoodbye!")
			return nil
		}
		c.clearScreen()
	}
}

func (c *Console) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return c.listVideos(ctx)
	case "2":
		return c.captionByLocator(ctx, models.AssetVideo)
	case "3":
		return c.upload(ctx, models.AssetVideo)
	case "4":
		return c.listImages(ctx)
	case "5":
		return c.captionByLocator(ctx, models.AssetImage)
	case "6":
		return c.upload(ctx, models.AssetImage)
	case "7":
		return c.deleteVideo(ctx)
	default:
		c.println("\nInvalid option. Please try again.")
		return nil
	}
}

// printError prints err with the upstream body when there is one
func (c *Console) printError(err error) {
	c.println(errorStyle.Render("❌ Error: " + err.Error()))
	if body := apierrors.GetResponseBody(err); body != "" {
		c.println(dimStyle.Render(body))
	}
}

func (c *Console) clearScreen() {
	if c.tty {
		c.printf("\033[H\033[2J")
	}
}
