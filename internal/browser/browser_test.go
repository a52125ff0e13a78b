package browser

import (
	"bytes"
	"context"
	"image/jpeg"
	"os/exec"
	"testing"
	"time"
)

// findChrome returns a Chrome binary or skips the test.
func findChrome(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("Chrome not found on PATH")
	return ""
}

func TestBrowser_Capture(t *testing.T) {
	chrome := findChrome(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	b, err := Launch(ctx, Options{ExecPath: chrome, Width: 640, Height: 480, Quality: 90})
	if err != nil {
		t.Skipf("browser could not start: %v", err)
	}
	defer b.Close()

	data, err := b.Capture(ctx, "<html><body><h1>hello</h1></body></html>")
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("capture is not a JPEG: %v", err)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("capture is %dx%d, want 640x480", cfg.Width, cfg.Height)
	}
}

func TestBrowser_CaptureCancelled(t *testing.T) {
	chrome := findChrome(t)

	b, err := Launch(context.Background(), Options{ExecPath: chrome, Width: 320, Height: 240})
	if err != nil {
		t.Skipf("browser could not start: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Capture(ctx, "<p>never</p>"); err == nil {
		t.Fatal("Capture() with a cancelled context should fail")
	}
}
