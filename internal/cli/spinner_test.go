package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinner_DrawsToOutput(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Computing layout...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Computing layout...") {
		t.Errorf("output %q does not contain the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("output %q does not end with a cleared line", out)
	}
}

func TestSpinner_StopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Computing layout...")
	s.Start()
	s.StopWithError("Layout failed")

	if out := buf.String(); !strings.Contains(out, iconError) || !strings.HasSuffix(out, " Layout failed\n") {
		t.Errorf("output %q has no error line", out)
	}
}

func TestSpinner_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Computing layout...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, "Computing layout...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestRunLayout_SpinnerReportsFailure(t *testing.T) {
	var buf bytes.Buffer
	c := testCLI()
	c.errOut = &buf
	input := writeRecords(t, `[{"appId": "A", "name": "Core"}]`)

	if err := c.runLayout(context.Background(), input, layoutOpts{noCache: true}); err == nil {
		t.Fatal("runLayout() succeeded without a primary")
	}
	if out := buf.String(); !strings.Contains(out, "Layout failed") {
		t.Errorf("spinner output %q has no failure line", out)
	}
}
