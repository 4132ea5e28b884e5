package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/zalando/go-keyring"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/config"
	"github.com/diogo/captionthis/internal/console"
	"github.com/diogo/captionthis/internal/tui"
)

// fakeTUI records how the commands started the TUI
type fakeTUI struct {
	runCalled    bool
	runOpts      tui.Options
	runSvc       tui.AssetService
	settingsCfg  *config.Config
	settingsInfo tui.SettingsInfo
	// onRun stands in for the user driving the TUI
	onRun func(svc tui.AssetService)
}

func (f *fakeTUI) Run(svc tui.AssetService, opts tui.Options) error {
	f.runCalled = true
	f.runSvc = svc
	f.runOpts = opts
	if f.onRun != nil {
		f.onRun(svc)
	}
	return nil
}

func (f *fakeTUI) RunSettings(cfg config.Config, info tui.SettingsInfo) (config.Config, error) {
	f.settingsCfg = &cfg
	f.settingsInfo = info
	return cfg, nil
}

// scriptedPrompter answers from a queue; an empty queue aborts
type scriptedPrompter struct {
	answers []string
}

func (p *scriptedPrompter) next() (string, error) {
	if len(p.answers) == 0 {
		return "", console.ErrAborted
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) Input(string) (string, error)    { return p.next() }
func (p *scriptedPrompter) Password(string) (string, error) { return p.next() }
func (p *scriptedPrompter) Select(_ string, _ []string, def string) (string, error) {
	return def, nil
}

type harness struct {
	deps   *Dependencies
	mock   *api.MockVisionClient
	fs     afero.Fs
	tui    *fakeTUI
	prompt *scriptedPrompter
	out    *bytes.Buffer
	errOut *bytes.Buffer
	cfg    config.Config
	saved  []config.Config
	copied []string
}

// newHarness wires commands to in-memory fakes. The keyring is mocked and
// API_KEY is cleared so no real credentials are read.
func newHarness(t *testing.T, mock *api.MockVisionClient) *harness {
	t.Helper()
	keyring.MockInit()
	t.Setenv(config.EnvAPIKey, "")

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/work", 0o755); err != nil {
		t.Fatal(err)
	}

	h := &harness{
		mock:   mock,
		fs:     fs,
		tui:    &fakeTUI{},
		prompt: &scriptedPrompter{},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		cfg:    config.DefaultConfig(),
	}
	h.deps = &Dependencies{
		TUI:        h.tui,
		Prompter:   h.prompt,
		Keys:       &config.KeyLoader{Fs: fs, Dir: "/work"},
		Fs:         fs,
		Out:        h.out,
		Err:        h.errOut,
		LoadConfig: func() (config.Config, error) { return h.cfg, nil },
		SaveConfig: func(c config.Config) error {
			h.saved = append(h.saved, c)
			return nil
		},
		ConfigPath: func() (string, error) { return "/home/test/.captionthis/config.json", nil },
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
		WorkDir: "/work",
	}
	if mock != nil {
		h.deps.Client = mock
	}
	return h
}

// run executes the command line and returns its error
func (h *harness) run(args ...string) error {
	root := NewRootCmd(h.deps)
	// a nil slice would make cobra read os.Args
	root.SetArgs(append([]string{}, args...))
	return root.Execute()
}

func (h *harness) mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := h.run(args...); err != nil {
		t.Fatalf("%v: %v\nstderr:\n%s", args, err, h.errOut.String())
	}
}

func (h *harness) writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := afero.WriteFile(h.fs, path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
