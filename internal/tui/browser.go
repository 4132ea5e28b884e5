package tui

import (
	"os"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// entryKind tells browser rows apart
type entryKind int

const (
	entryUp entryKind = iota
	entryDir
	entryFile
	entrySelectFolder
)

const (
	labelUp           = ".. (up)"
	labelSelectFolder = "Select this folder…"
)

type browserEntry struct {
	kind entryKind
	name string
	size int64
}

// browserAction is what a key press did to the browser
type browserAction int

const (
	browserNone browserAction = iota
	browserPickedFile
	browserPickedFolder
	browserCancelled
)

// fileBrowser walks directories on an afero.Fs. Directories are listed
// before files, both sorted by name.
type fileBrowser struct {
	fs      afero.Fs
	dir     string
	entries []browserEntry
	list    selector
	err     error
	picked  string
}

func newFileBrowser(fs afero.Fs, dir string) fileBrowser {
	b := fileBrowser{fs: fs}
	b.chdir(dir)
	return b
}

// chdir lists dir and resets the cursor. A directory that cannot be
// read keeps the previous listing and records the error.
func (b *fileBrowser) chdir(dir string) {
	dir = filepath.Clean(dir)
	infos, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		b.err = err
		if b.entries != nil {
			return
		}
		infos = nil
	} else {
		b.err = nil
	}
	b.dir = dir
	b.entries = browserEntries(dir, infos)

	items := make([]selectorItem, len(b.entries))
	for i, e := range b.entries {
		items[i] = e.item(i)
	}
	width, height := b.list.width, b.list.height
	b.list = newSelector("Browse: "+dir, items, true)
	b.list.setSize(width, height)
}

func browserEntries(dir string, infos []os.FileInfo) []browserEntry {
	var dirs, files []browserEntry
	for _, info := range infos {
		if info.IsDir() {
			dirs = append(dirs, browserEntry{kind: entryDir, name: info.Name()})
		} else {
			files = append(files, browserEntry{kind: entryFile, name: info.Name(), size: info.Size()})
		}
	}
	byName := func(s []browserEntry) {
		sort.Slice(s, func(i, j int) bool { return s[i].name < s[j].name })
	}
	byName(dirs)
	byName(files)

	entries := make([]browserEntry, 0, len(dirs)+len(files)+2)
	if filepath.Dir(dir) != dir {
		entries = append(entries, browserEntry{kind: entryUp, name: labelUp})
	}
	entries = append(entries, dirs...)
	entries = append(entries, files...)
	return append(entries, browserEntry{kind: entrySelectFolder, name: labelSelectFolder})
}

func (e browserEntry) item(i int) selectorItem {
	switch e.kind {
	case entryDir:
		return selectorItem{title: e.name + "/", value: i}
	case entryFile:
		return selectorItem{title: e.name, detail: humanize.Bytes(uint64(e.size)), value: i}
	default:
		return selectorItem{title: e.name, value: i}
	}
}

func (b *fileBrowser) setSize(width, height int) {
	b.list.setSize(width, height)
}

// update applies a key press. Choosing a file sets picked.
func (b fileBrowser) update(msg tea.KeyMsg) (fileBrowser, browserAction) {
	var action selectorAction
	b.list, action = b.list.update(msg)

	switch action {
	case selectorCancelled:
		return b, browserCancelled
	case selectorChosen:
		it, ok := b.list.selected()
		if !ok {
			return b, browserNone
		}
		entry := b.entries[it.value]
		switch entry.kind {
		case entryUp:
			b.chdir(filepath.Dir(b.dir))
		case entryDir:
			b.chdir(filepath.Join(b.dir, entry.name))
		case entryFile:
			b.picked = filepath.Join(b.dir, entry.name)
			return b, browserPickedFile
		case entrySelectFolder:
			return b, browserPickedFolder
		}
	}
	return b, browserNone
}

func (b fileBrowser) view() string {
	out := b.list.view()
	if b.err != nil {
		out += "\n\n" + errorStyle.Render(b.err.Error())
	}
	return out
}
