package service

import (
	"testing"
	"time"

	"elotec-nettbutikk/models"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := NewSessionStore(time.Minute)
	session := &models.ExportSession{FileName: "export.csv"}
	store.Save(session)

	if session.ID == "" {
		t.Fatal("Save did not assign an ID")
	}
	got, ok := store.Get(session.ID)
	if !ok || got != session {
		t.Fatalf("Get(%q) = %v, %v", session.ID, got, ok)
	}
	if _, ok := store.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	first := &models.ExportSession{}
	store.Save(first)
	now = now.Add(6 * time.Minute)
	second := &models.ExportSession{}
	store.Save(second)

	now = now.Add(5 * time.Minute)
	if _, ok := store.Get(first.ID); ok {
		t.Error("first session should have expired")
	}
	if _, ok := store.Get(second.ID); !ok {
		t.Error("second session should still be available")
	}

	if removed := store.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}
