package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/capacitanet/portal/random"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTP pushes uploads to a remote host. Host key verification is skipped;
// the target is an internal storage box on a trusted network.
type SFTP struct {
	Host      string
	Port      int
	User      string
	Pass      string
	RemoteDir string
	PublicURL string
}

func (s *SFTP) Upload(ctx context.Context, dir string, name string, src io.Reader) (string, error) {
	if s.Host == "" || s.User == "" || s.Pass == "" {
		return "", fmt.Errorf("sftp: missing host, user or password")
	}

	port := s.Port
	if port <= 0 {
		port = 22
	}

	sshCfg := &ssh.ClientConfig{
		User:            s.User,
		Auth:            []ssh.AuthMethod{ssh.Password(s.Pass)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         20 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", s.Host, port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}
	defer sshClient.Close()

	cli, err := sftp.NewClient(sshClient)
	if err != nil {
		return "", fmt.Errorf("sftp: new client: %w", err)
	}
	defer cli.Close()

	stored := random.String(8) + "-" + path.Base(name)
	remoteDir := path.Join(s.RemoteDir, dir)

	if err := cli.MkdirAll(remoteDir); err != nil {
		return "", fmt.Errorf("sftp: mkdir %s: %w", remoteDir, err)
	}

	dst, err := cli.Create(path.Join(remoteDir, stored))
	if err != nil {
		return "", fmt.Errorf("sftp: create remote file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("sftp: upload copy: %w", err)
	}

	return s.PublicURL + "/" + path.Join(dir, stored), nil
}
