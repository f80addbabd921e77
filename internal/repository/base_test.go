package repository

import (
	"testing"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

func TestCreateThenFindByID(t *testing.T) {
	db := newTestDB(t)
	clock := newFakeClock()
	users := NewUserRepository(db, seqIDs(), clock.Now)

	created, err := users.Create(&models.User{Name: "mira", Email: "mira@example.com", IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create should populate the id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("create should populate timestamps")
	}

	found, err := users.FindByID(created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil {
		t.Fatal("created row not found")
	}
	if found.Name != "mira" || found.Email != "mira@example.com" || !found.IsActive {
		t.Errorf("found row differs from created: %+v", found)
	}
	if !found.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed across read: %v vs %v", found.CreatedAt, created.CreatedAt)
	}
}

func TestFindByIDMissing(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db, nil, nil)

	got, err := users.FindByID("nope")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != nil {
		t.Errorf("missing key should yield nil, got %+v", got)
	}
}

func TestExists(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db, seqIDs(), nil)

	u, err := users.Create(&models.User{Name: "a", IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := users.Exists(u.ID)
	if err != nil || !ok {
		t.Errorf("Exists(%s) = %v, %v", u.ID, ok, err)
	}
	ok, err = users.Exists("nope")
	if err != nil || ok {
		t.Errorf("Exists(nope) = %v, %v", ok, err)
	}
}

func TestUpdateTouchesTimestampAndRereads(t *testing.T) {
	db := newTestDB(t)
	clock := newFakeClock()
	users := NewUserRepository(db, seqIDs(), clock.Now)

	u, err := users.Create(&models.User{Name: "before", IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := u.UpdatedAt

	updated, err := users.Update(u.ID, map[string]any{"name": "after"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Fatal("update on existing key returned nil")
	}
	if updated.Name != "after" {
		t.Errorf("update not persisted: %+v", updated)
	}
	if !updated.UpdatedAt.After(before) {
		t.Errorf("updated_at should be strictly greater: %v <= %v", updated.UpdatedAt, before)
	}
}

func TestUpdateMissingKey(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db, nil, nil)

	got, err := users.Update("nope", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("update should not error on a missing key: %v", err)
	}
	if got != nil {
		t.Errorf("update on missing key should yield nil, got %+v", got)
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db, seqIDs(), nil)

	u, err := users.Create(&models.User{Name: "gone", IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := users.Delete(u.ID)
	if err != nil || !removed {
		t.Fatalf("delete existing: %v, %v", removed, err)
	}
	removed, err = users.Delete(u.ID)
	if err != nil || removed {
		t.Fatalf("delete missing should report false: %v, %v", removed, err)
	}

	got, err := users.FindByID(u.ID)
	if err != nil || got != nil {
		t.Errorf("deleted row still reachable: %+v, %v", got, err)
	}
}
