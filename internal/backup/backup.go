// Package backup keeps encrypted store snapshots as files under a backup
// directory, for device-to-device moves and recovery. A backup is the
// manager's whole-store snapshot blob, AES-GCM encrypted when a passphrase
// is configured.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/xiehuijie/my-track-expenses/internal/storage"
	"github.com/xiehuijie/my-track-expenses/internal/util"
)

// Info describes one backup file on disk.
type Info struct {
	Name      string
	Path      string
	Size      int64
	CreatedAt time.Time
}

// Service creates and restores backups against one manager.
type Service struct {
	manager    *storage.Manager
	dir        string
	passphrase string // empty means plaintext backups
	log        *logrus.Logger
}

func NewService(m *storage.Manager, dir, passphrase string, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &Service{manager: m, dir: dir, passphrase: passphrase, log: log}
}

// Create exports the store and writes it as a new backup file.
func (s *Service) Create() (*Info, error) {
	blob, err := s.manager.ExportSnapshot()
	if err != nil {
		return nil, fmt.Errorf("export store: %w", err)
	}
	if blob == nil {
		return nil, fmt.Errorf("nothing to back up")
	}

	if s.passphrase != "" {
		blob, err = util.EncryptAES(s.passphrase, blob)
		if err != nil {
			return nil, fmt.Errorf("encrypt backup: %w", err)
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("backup-%s.bin", uuid.New().String())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, blob, 0o600); err != nil {
		return nil, fmt.Errorf("write backup file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat backup file: %w", err)
	}

	s.log.WithFields(logrus.Fields{"file": name, "size": info.Size()}).Info("backup created")
	return &Info{Name: name, Path: path, Size: info.Size(), CreatedAt: info.ModTime()}, nil
}

// List returns the existing backups, newest first.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var out []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "backup-") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			Name:      e.Name(),
			Path:      filepath.Join(s.dir, e.Name()),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Restore replaces the store with the named backup's contents. The manager
// re-initializes, so repository handles fetched before the restore are stale.
func (s *Service) Restore(name string) error {
	blob, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}

	if s.passphrase != "" {
		blob, err = util.DecryptAES(s.passphrase, blob)
		if err != nil {
			return fmt.Errorf("decrypt backup: %w", err)
		}
	}

	if err := s.manager.ImportSnapshot(blob); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	s.log.WithField("file", filepath.Base(name)).Info("backup restored")
	return nil
}

// Delete removes the named backup file.
func (s *Service) Delete(name string) error {
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil {
		return fmt.Errorf("delete backup file: %w", err)
	}
	return nil
}
