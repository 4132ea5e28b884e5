package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Connecting")
	s.start()
	s.stopWithSuccess("done")

	out := buf.String()
	if !strings.Contains(out, "Connecting...") || !strings.Contains(out, "✓ done") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Connecting")
	s.start()
	s.stopWithError()
	// A second stop must not panic on the closed channel
	s.stopWithError()

	if strings.Contains(buf.String(), "✓") {
		t.Errorf("error stop should not print success: %q", buf.String())
	}
}

func TestSpinner_SetMessageWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Uploading")
	s.start()
	s.setMessage("Waiting for indexing")
	s.stopWithSuccess("ok")
	s.setMessage("ignored after stop")

	out := buf.String()
	if !strings.Contains(out, "Waiting for indexing...") {
		t.Errorf("expected stage line, got %q", out)
	}
	if strings.Contains(out, "ignored") {
		t.Errorf("message after stop was printed: %q", out)
	}
}
