// Package screenshot saves a clipboard image to a PNG file by shelling out
// to the platform clipboard tool. Used to attach screenshots to issues:
// the user hits PrintScreen, then runs dx issue --screenshot.
package screenshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dxcli/dx/internal/cmd"
)

// psSaveScript saves the clipboard image via .NET; exits 1 when the
// clipboard holds no image.
const psSaveScript = `$img = Get-Clipboard -Format Image
if ($null -eq $img) { exit 1 }
$img.Save(%q, [System.Drawing.Imaging.ImageFormat]::Png)`

// ErrNoImage indicates the clipboard does not contain an image.
var ErrNoImage = fmt.Errorf("no image on the clipboard")

// FromClipboard writes the clipboard image as PNG to dest.
func FromClipboard(ctx context.Context, dest string) error {
	switch runtime.GOOS {
	case "windows":
		script := fmt.Sprintf(psSaveScript, dest)
		if err := cmd.RunContext(ctx, "", "powershell.exe", "-NoProfile", "-Command", script); err != nil {
			return classify(ctx, err)
		}
		return nil
	case "darwin":
		if err := cmd.RunContext(ctx, "", "pngpaste", dest); err != nil {
			return classify(ctx, err)
		}
		return nil
	default:
		// wl-paste / xclip write the PNG to stdout
		out, err := pasteLinux(ctx)
		if err != nil {
			return classify(ctx, err)
		}
		if len(out) == 0 {
			return ErrNoImage
		}
		if err := os.WriteFile(dest, out, 0644); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
		return nil
	}
}

func pasteLinux(ctx context.Context) ([]byte, error) {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return cmd.OutputContext(ctx, "", "wl-paste", "--type", "image/png")
	}
	return cmd.OutputContext(ctx, "", "xclip", "-selection", "clipboard", "-t", "image/png", "-o")
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	// A tool that isn't installed is a setup problem, not an empty clipboard
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("clipboard tool not available: %w", err)
	}
	// Clipboard tools exit non-zero both when missing an image and when the
	// target type is unavailable; either way there is nothing to save.
	return fmt.Errorf("%w (%v)", ErrNoImage, err)
}

// TempPath returns a unique path for a captured screenshot in the system
// temp directory.
func TempPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("dx-shot-%d.png", time.Now().UnixNano()))
}
