package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/capacitanet/portal/random"
)

// Disk writes uploads under Root and builds locators off PublicURL.
type Disk struct {
	Root      string
	PublicURL string
}

func (d *Disk) Upload(ctx context.Context, dir string, name string, src io.Reader) (string, error) {
	stored := random.String(8) + "-" + filepath.Base(name)

	target := filepath.Join(d.Root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("disk: mkdir %s: %w", target, err)
	}

	dst, err := os.Create(filepath.Join(target, stored))
	if err != nil {
		return "", fmt.Errorf("disk: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("disk: write file: %w", err)
	}

	return d.PublicURL + "/" + path.Join(dir, stored), nil
}
