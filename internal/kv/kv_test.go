package kv

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if s.Has("anything") {
		t.Error("fresh store should have no keys")
	}

	// The file is only created on first write.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Open() should not create the file before a write")
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := map[string]int{"a": 1, "b": 2}
	if err := s.Put("numbers", want); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	var got map[string]int
	ok, err := s.Get("numbers", &got)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Fatal("Get() reported key absent after Put()")
	}
	if got["a"] != 1 || got["b"] != 2 {
		t.Errorf("Get() = %v, want %v", got, want)
	}
}

func TestGet_AbsentKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "meta.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	var v string
	ok, err := s.Get("missing", &v)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok {
		t.Error("Get() reported a missing key as present")
	}
}

func TestPut_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	if err := s1.Put("greeting", "hello"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}

	var got string
	ok, err := s2.Get("greeting", &got)
	if err != nil || !ok {
		t.Fatalf("Get() after reopen failed: ok=%v err=%v", ok, err)
	}
	if got != "hello" {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}
}

func TestDelete_RemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := s.Put("k", 42); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if s.Has("k") {
		t.Error("key still present after Delete()")
	}

	// Deleting an absent key is a no-op.
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete() of absent key failed: %v", err)
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Error("expected error opening corrupt store, got nil")
	}
}

func TestOpen_MissingParentDir(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nope", "meta.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	// Writes must fail because the parent directory does not exist.
	if err := s.Put("k", 1); err == nil {
		t.Error("expected Put() to fail without parent directory")
	}
}
