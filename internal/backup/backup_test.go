package backup

import (
	"os"
	"strings"
	"testing"

	"github.com/xiehuijie/my-track-expenses/internal/models"
	"github.com/xiehuijie/my-track-expenses/internal/storage"
)

func newReadyManager(t *testing.T) *storage.Manager {
	t.Helper()
	m := storage.NewManager(storage.Options{
		Engine: storage.NewMemoryEngine(storage.NewMemoryBlobStore(), ""),
	})
	if err := m.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = m.Teardown() })
	return m
}

func TestCreateRestoreRoundTrip(t *testing.T) {
	m := newReadyManager(t)
	svc := NewService(m, t.TempDir(), "paper-trail", nil)

	users, _ := m.Users()
	kept, err := users.Create(&models.User{Name: "kept", IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	info, err := svc.Create()
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if !strings.HasPrefix(info.Name, "backup-") || info.Size == 0 {
		t.Fatalf("backup info = %+v", info)
	}

	// the encrypted file must not leak the snapshot JSON
	raw, err := os.ReadFile(info.Path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if strings.Contains(string(raw), "kept") {
		t.Error("backup file contains plaintext")
	}

	if _, err := users.Create(&models.User{Name: "doomed", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Restore(info.Name); err != nil {
		t.Fatalf("restore: %v", err)
	}

	users, err = m.Users()
	if err != nil {
		t.Fatalf("users after restore: %v", err)
	}
	all, err := users.FindAll()
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 1 || all[0].ID != kept.ID {
		t.Errorf("store after restore = %+v, want only %s", all, kept.ID)
	}
}

func TestRestoreWrongPassphrase(t *testing.T) {
	m := newReadyManager(t)
	dir := t.TempDir()

	users, _ := m.Users()
	if _, err := users.Create(&models.User{Name: "safe", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	info, err := NewService(m, dir, "right", nil).Create()
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}

	if err := NewService(m, dir, "wrong", nil).Restore(info.Name); err == nil {
		t.Fatal("restore with wrong passphrase should fail")
	}

	// the store is untouched by the failed restore
	users, _ = m.Users()
	if all, _ := users.FindAll(); len(all) != 1 {
		t.Errorf("store damaged by failed restore: %+v", all)
	}
}

func TestListNewestFirst(t *testing.T) {
	m := newReadyManager(t)
	dir := t.TempDir()
	svc := NewService(m, dir, "", nil)

	users, _ := m.Users()
	if _, err := users.Create(&models.User{Name: "x", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Create(); err != nil {
		t.Fatalf("first backup: %v", err)
	}
	if _, err := svc.Create(); err != nil {
		t.Fatalf("second backup: %v", err)
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list = %d entries, want 2", len(list))
	}
	if list[0].CreatedAt.Before(list[1].CreatedAt) {
		t.Error("list should be newest first")
	}
}

func TestListMissingDir(t *testing.T) {
	m := newReadyManager(t)
	svc := NewService(m, t.TempDir()+"/never-created", "", nil)

	list, err := svc.List()
	if err != nil || list != nil {
		t.Errorf("missing dir: %+v, %v", list, err)
	}
}

func TestDelete(t *testing.T) {
	m := newReadyManager(t)
	svc := NewService(m, t.TempDir(), "", nil)

	users, _ := m.Users()
	if _, err := users.Create(&models.User{Name: "x", IsActive: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	info, err := svc.Create()
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}

	if err := svc.Delete(info.Name); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if list, _ := svc.List(); len(list) != 0 {
		t.Errorf("backup still listed after delete: %+v", list)
	}
}
