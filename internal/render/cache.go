package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers keeps one sync.Pool of glamour renderers per Options value.
// A TermRenderer must not be shared by concurrent Render calls, so each
// caller takes its own from the pool.
type renderers struct {
	mu    sync.Mutex
	pools map[Options]*sync.Pool
}

var pool = &renderers{pools: make(map[Options]*sync.Pool)}

func (r *renderers) poolFor(opts Options) *sync.Pool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pools[opts]
	if !ok {
		p = &sync.Pool{}
		r.pools[opts] = p
	}
	return p
}

// acquire takes a renderer for opts, building one when the pool is empty
func (r *renderers) acquire(opts Options) (*glamour.TermRenderer, error) {
	if tr, ok := r.poolFor(opts).Get().(*glamour.TermRenderer); ok {
		return tr, nil
	}
	return newRenderer(opts)
}

func (r *renderers) release(opts Options, tr *glamour.TermRenderer) {
	if tr != nil {
		r.poolFor(opts).Put(tr)
	}
}

// reset drops every pool
func (r *renderers) reset() {
	r.mu.Lock()
	r.pools = make(map[Options]*sync.Pool)
	r.mu.Unlock()
}

func (r *renderers) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pools)
}

// newRenderer builds a TermRenderer. A style that is not built in is read
// as a glamour JSON style file.
func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	ropts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if name, ok := StandardStyle(opts.Style); ok {
		ropts = append(ropts, glamour.WithStandardStyle(name))
	} else {
		ropts = append(ropts, glamour.WithStylePath(opts.Style))
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(ropts...)
}
