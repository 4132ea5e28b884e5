package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/reflow/truncate"
)

// selectorItem is one row of a selector. Value indexes into whatever
// slice the caller built the items from.
type selectorItem struct {
	title  string
	detail string
	value  int
}

// selectorAction is what a key press did to a selector
type selectorAction int

const (
	selectorNone selectorAction = iota
	selectorChosen
	selectorCancelled
)

// selector is a vertical list with a wrap-around cursor. When filterable,
// typed characters narrow the list by fuzzy match on the title and detail.
type selector struct {
	title      string
	items      []selectorItem
	filterable bool
	filter     string
	cursor     int

	width  int
	height int
}

func newSelector(title string, items []selectorItem, filterable bool) selector {
	return selector{
		title:      title,
		items:      items,
		filterable: filterable,
	}
}

// setSize records the space the selector may draw in
func (s *selector) setSize(width, height int) {
	s.width = width
	s.height = height
}

// visible returns the items matching the current filter, in original order
func (s selector) visible() []selectorItem {
	if s.filter == "" {
		return s.items
	}
	var out []selectorItem
	for _, it := range s.items {
		if fuzzy.MatchFold(s.filter, it.title) || fuzzy.MatchFold(s.filter, it.detail) {
			out = append(out, it)
		}
	}
	return out
}

// selected returns the item under the cursor
func (s selector) selected() (selectorItem, bool) {
	items := s.visible()
	if s.cursor < 0 || s.cursor >= len(items) {
		return selectorItem{}, false
	}
	return items[s.cursor], true
}

// update applies a key press
func (s selector) update(msg tea.KeyMsg) (selector, selectorAction) {
	n := len(s.visible())

	switch msg.Type {
	case tea.KeyUp:
		s.cursor = wrapCursor(s.cursor-1, n)
		return s, selectorNone
	case tea.KeyDown, tea.KeyTab:
		s.cursor = wrapCursor(s.cursor+1, n)
		return s, selectorNone
	case tea.KeyHome:
		s.cursor = 0
		return s, selectorNone
	case tea.KeyEnd:
		s.cursor = max(n-1, 0)
		return s, selectorNone
	case tea.KeyEnter:
		if n == 0 {
			return s, selectorNone
		}
		return s, selectorChosen
	case tea.KeyEsc:
		if s.filterable && s.filter != "" {
			s.filter = ""
			s.cursor = 0
			return s, selectorNone
		}
		return s, selectorCancelled
	case tea.KeyBackspace:
		if s.filterable && s.filter != "" {
			r := []rune(s.filter)
			s.filter = string(r[:len(r)-1])
			s.cursor = 0
		}
		return s, selectorNone
	case tea.KeySpace:
		if s.filterable {
			s.filter += " "
			s.cursor = 0
		}
		return s, selectorNone
	case tea.KeyRunes:
		if s.filterable {
			s.filter += string(msg.Runes)
			s.cursor = 0
			return s, selectorNone
		}
		switch msg.String() {
		case "k":
			s.cursor = wrapCursor(s.cursor-1, n)
		case "j":
			s.cursor = wrapCursor(s.cursor+1, n)
		case "g":
			s.cursor = 0
		case "G":
			s.cursor = max(n-1, 0)
		}
	}
	return s, selectorNone
}

func wrapCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor < 0 {
		return n - 1
	}
	if cursor >= n {
		return 0
	}
	return cursor
}

// view renders the list with a scroll window that follows the cursor
func (s selector) view() string {
	var b strings.Builder

	b.WriteString(panelTitleStyle.Render(s.title))
	b.WriteString("\n")

	if s.filterable {
		if s.filter != "" {
			b.WriteString(inputLabelStyle.Render("Filter:") + filterStyle.Render(s.filter) + "_")
		} else {
			b.WriteString(hintStyle.Render("Type to filter"))
		}
		b.WriteString("\n\n")
	}

	items := s.visible()
	if len(items) == 0 {
		if s.filter != "" {
			b.WriteString(hintStyle.Render("  No matches"))
		} else {
			b.WriteString(hintStyle.Render("  Nothing to show"))
		}
		return b.String()
	}

	maxVisible := s.height - 8
	if maxVisible < 3 {
		maxVisible = 3
	}

	startIdx := 0
	if s.cursor >= maxVisible {
		startIdx = s.cursor - maxVisible + 1
	}
	endIdx := min(startIdx+maxVisible, len(items))

	if startIdx > 0 {
		b.WriteString(hintStyle.Render("  ↑ more above"))
		b.WriteString("\n")
	}

	lineWidth := s.width - 4
	if lineWidth < 20 {
		lineWidth = 20
	}

	for i := startIdx; i < endIdx; i++ {
		it := items[i]
		title := it.title
		if it.detail != "" {
			title = fmt.Sprintf("%s  %s", it.title, menuDetailStyle.Render(it.detail))
		}
		title = truncate.StringWithTail(title, uint(lineWidth), "…")

		if i == s.cursor {
			b.WriteString(menuCursorStyle.Render("> ") + menuSelectedStyle.Render(title))
		} else {
			b.WriteString(menuItemStyle.Render(title))
		}
		b.WriteString("\n")
	}

	if endIdx < len(items) {
		b.WriteString(hintStyle.Render(fmt.Sprintf("  ↓ %d more below", len(items)-endIdx)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
