package raster

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Pdftoppm renders pages with poppler's pdftoppm binary.
type Pdftoppm struct {
	// Bin is the executable path; empty means "pdftoppm" from PATH.
	Bin string
}

// RenderPage runs pdftoppm for a single page and returns the PNG it wrote.
func (p Pdftoppm) RenderPage(ctx context.Context, path string, page, dpi int) ([]byte, error) {
	bin := p.Bin
	if bin == "" {
		bin = "pdftoppm"
	}
	prefix := filepath.Join(filepath.Dir(path), "page-"+strconv.Itoa(page))
	n := strconv.Itoa(page)
	args := []string{"-png", "-r", strconv.Itoa(dpi), "-f", n, "-l", n, "-singlefile", path, prefix}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	out := prefix + ".png"
	defer os.Remove(out)
	b, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	return b, nil
}
