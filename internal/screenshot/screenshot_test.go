package screenshot

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("missing tool is not an empty clipboard", func(t *testing.T) {
		t.Parallel()
		toolErr := &exec.Error{Name: "pngpaste", Err: exec.ErrNotFound}
		got := classify(context.Background(), toolErr)
		if errors.Is(got, ErrNoImage) {
			t.Errorf("classify(missing tool) = %v, must not be ErrNoImage", got)
		}
		if !errors.Is(got, exec.ErrNotFound) {
			t.Errorf("classify(missing tool) = %v, want exec.ErrNotFound preserved", got)
		}
	})

	t.Run("nonzero exit means no image", func(t *testing.T) {
		t.Parallel()
		got := classify(context.Background(), errors.New("exit status 1"))
		if !errors.Is(got, ErrNoImage) {
			t.Errorf("classify(exit error) = %v, want ErrNoImage", got)
		}
	})

	t.Run("cancellation wins", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		got := classify(ctx, errors.New("signal: killed"))
		if !errors.Is(got, context.Canceled) {
			t.Errorf("classify(cancelled ctx) = %v, want context.Canceled", got)
		}
	})
}

func TestTempPath(t *testing.T) {
	t.Parallel()

	a := TempPath()
	b := TempPath()
	if a == b {
		t.Errorf("TempPath returned the same path twice: %q", a)
	}
	if filepath.Ext(a) != ".png" {
		t.Errorf("TempPath = %q, want .png extension", a)
	}
	if !strings.Contains(filepath.Base(a), "dx-shot-") {
		t.Errorf("TempPath base = %q, want dx-shot- prefix", filepath.Base(a))
	}
}
