package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/capacitanet/portal/config"
)

// Uploader persists the bytes of an uploaded resource and returns the
// locator under which they can be retrieved. The locator is opaque to the
// rest of the system.
type Uploader interface {
	Upload(ctx context.Context, dir string, name string, src io.Reader) (string, error)
}

func FromConfig(cfg config.Upload) (Uploader, error) {
	switch cfg.Backend {
	case "disk":
		return &Disk{Root: cfg.Dir, PublicURL: cfg.PublicURL}, nil
	case "sftp":
		return &SFTP{
			Host:      cfg.SFTP.Host,
			Port:      cfg.SFTP.Port,
			User:      cfg.SFTP.User,
			Pass:      cfg.SFTP.Pass,
			RemoteDir: cfg.Dir,
			PublicURL: cfg.PublicURL,
		}, nil
	}
	return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
}
