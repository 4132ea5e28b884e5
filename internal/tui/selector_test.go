package tui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func testItems(titles ...string) []selectorItem {
	items := make([]selectorItem, len(titles))
	for i, title := range titles {
		items[i] = selectorItem{title: title, value: i}
	}
	return items
}

func TestWrapCursor(t *testing.T) {
	tests := []struct {
		cursor, n, want int
	}{
		{-1, 3, 2},
		{3, 3, 0},
		{1, 3, 1},
		{-1, 0, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := wrapCursor(tt.cursor, tt.n); got != tt.want {
			t.Errorf("wrapCursor(%d, %d) = %d, want %d", tt.cursor, tt.n, got, tt.want)
		}
	}
}

func TestSelector_Navigation(t *testing.T) {
	s := newSelector("pick", testItems("a", "b", "c"), false)

	tests := []struct {
		key        string
		wantCursor int
		wantAction selectorAction
	}{
		{"down", 1, selectorNone},
		{"j", 2, selectorNone},
		{"down", 0, selectorNone},
		{"k", 2, selectorNone},
		{"g", 0, selectorNone},
		{"G", 2, selectorNone},
		{"enter", 2, selectorChosen},
		{"esc", 2, selectorCancelled},
	}

	for _, tt := range tests {
		var action selectorAction
		s, action = s.update(keyMsg(tt.key))
		if s.cursor != tt.wantCursor || action != tt.wantAction {
			t.Errorf("after %q: cursor=%d action=%v, want cursor=%d action=%v",
				tt.key, s.cursor, action, tt.wantCursor, tt.wantAction)
		}
	}
}

func TestSelector_FuzzyFilter(t *testing.T) {
	s := newSelector("pick", testItems("sunset.mp4", "city.mov", "sunrise.webm"), true)

	for _, k := range []string{"s", "n", "s"} {
		s, _ = s.update(keyMsg(k))
	}

	var got []string
	for _, it := range s.visible() {
		got = append(got, it.title)
	}
	if diff := cmp.Diff([]string{"sunset.mp4", "sunrise.webm"}, got); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}

	s, _ = s.update(keyMsg("down"))
	it, ok := s.selected()
	if !ok || it.value != 2 {
		t.Errorf("selected = %+v, want sunrise.webm", it)
	}
}

func TestSelector_EnterOnEmptyDoesNothing(t *testing.T) {
	s := newSelector("pick", testItems("a"), true)
	s, _ = s.update(keyMsg("z"))

	_, action := s.update(keyMsg("enter"))
	if action != selectorNone {
		t.Error("enter with no matches should not choose")
	}
	if !strings.Contains(s.view(), "No matches") {
		t.Error("view should say there are no matches")
	}
}

func TestSelector_ViewScrolls(t *testing.T) {
	titles := make([]string, 30)
	for i := range titles {
		titles[i] = strings.Repeat("x", i+1)
	}
	s := newSelector("pick", testItems(titles...), false)
	s.setSize(80, 12)

	view := s.view()
	if !strings.Contains(view, "more below") {
		t.Error("long list should show a more-below hint")
	}

	for i := 0; i < 10; i++ {
		s, _ = s.update(keyMsg("down"))
	}
	if !strings.Contains(s.view(), "more above") {
		t.Error("scrolled list should show a more-above hint")
	}
}

func TestFileBrowser_Listing(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/work/zeta", 0o755)
	_ = fs.MkdirAll("/work/alpha", 0o755)
	_ = afero.WriteFile(fs, "/work/b.mp4", make([]byte, 2048), 0o644)
	_ = afero.WriteFile(fs, "/work/a.png", []byte("x"), 0o644)

	b := newFileBrowser(fs, "/work")

	var got []string
	for _, it := range b.list.visible() {
		got = append(got, it.title)
	}
	want := []string{labelUp, "alpha/", "zeta/", "a.png", "b.mp4", labelSelectFolder}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if detail := b.list.items[4].detail; detail != "2.0 kB" {
		t.Errorf("size detail = %q, want 2.0 kB", detail)
	}
}

func TestFileBrowser_Navigation(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll("/work/sub", 0o755)
	_ = afero.WriteFile(fs, "/work/sub/clip.mov", []byte("x"), 0o644)

	b := newFileBrowser(fs, "/work")

	var action browserAction
	b, _ = b.update(keyMsg("down"))
	b, action = b.update(keyMsg("enter"))
	if action != browserNone || b.dir != "/work/sub" {
		t.Fatalf("expected to enter /work/sub, got %s", b.dir)
	}

	b, _ = b.update(keyMsg("enter"))
	if b.dir != "/work" {
		t.Fatalf("up should return to /work, got %s", b.dir)
	}

	b, _ = b.update(keyMsg("down"))
	b, _ = b.update(keyMsg("enter"))
	b, _ = b.update(keyMsg("down"))
	b, action = b.update(keyMsg("enter"))
	if action != browserPickedFile || b.picked != "/work/sub/clip.mov" {
		t.Errorf("picked %q (action %v)", b.picked, action)
	}

	b, _ = b.update(keyMsg("end"))
	_, action = b.update(keyMsg("enter"))
	if action != browserPickedFolder {
		t.Errorf("action = %v, want picked folder", action)
	}
}

func TestFileBrowser_UnreadableDir(t *testing.T) {
	b := newFileBrowser(afero.NewMemMapFs(), "/missing")
	if b.err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	if !strings.Contains(b.view(), labelSelectFolder) {
		t.Error("the folder entry should still be offered")
	}
}
