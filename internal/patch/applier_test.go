package patch

import (
	"bytes"
	"testing"
)

func TestApply(t *testing.T) {
	path := newTarget(t, 0x40)

	applier, err := NewApplier(path)
	if err != nil {
		t.Fatalf("NewApplier() error = %v", err)
	}

	patches := []Patch{
		{Offset: 0x10, Data: []byte{0xAA}},
		{Offset: 0x20, Data: []byte{0xBB, 0xCC}},
	}

	results := applier.Apply(patches)
	if err := applier.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if failed := Failed(results); failed != 0 {
		t.Fatalf("Failed() = %d, want 0", failed)
	}

	got := readTarget(t, path)
	if got[0x10] != 0xAA {
		t.Errorf("byte at 0x10 = 0x%02X, want 0xAA", got[0x10])
	}
	if got[0x20] != 0xBB || got[0x21] != 0xCC {
		t.Errorf("bytes at 0x20-0x21 = 0x%02X 0x%02X, want 0xBB 0xCC", got[0x20], got[0x21])
	}

	// All other bytes are untouched.
	for i, b := range got {
		switch i {
		case 0x10, 0x20, 0x21:
			continue
		}
		if b != 0x00 {
			t.Errorf("byte at 0x%X = 0x%02X, want 0x00", i, b)
		}
	}
}

func TestApplyContinuesAfterFailure(t *testing.T) {
	path := newTarget(t, 0x40)

	applier, err := NewApplier(path)
	if err != nil {
		t.Fatalf("NewApplier() error = %v", err)
	}
	defer applier.Close()

	patches := []Patch{
		{Offset: 0x08, Data: []byte{0x11}},
		{Offset: 0x1000, Data: []byte{0xFF}}, // beyond file length
		{Offset: 0x18, Data: []byte{0x22, 0x33}},
	}

	results := applier.Apply(patches)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("patch 1 error = %v, want nil", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("patch 2 error = nil, want out-of-range error")
	}
	if results[2].Err != nil {
		t.Errorf("patch 3 error = %v, want nil", results[2].Err)
	}
	if failed := Failed(results); failed != 1 {
		t.Errorf("Failed() = %d, want 1", failed)
	}

	// Patches around the failed one still applied.
	got := readTarget(t, path)
	if got[0x08] != 0x11 || got[0x18] != 0x22 || got[0x19] != 0x33 {
		t.Error("patches surrounding the failed entry were not applied")
	}
	if len(got) != 0x40 {
		t.Errorf("file size = %d, want %d (file must not grow)", len(got), 0x40)
	}
}

func TestNewApplierMissingFile(t *testing.T) {
	if _, err := NewApplier(t.TempDir() + "/missing.bin"); err == nil {
		t.Error("NewApplier() error = nil, want error")
	}
}

// TestPatchRestoreRoundTrip runs the full pipeline sequence and checks
// that restoring the backup returns the exact pre-patch bytes.
func TestPatchRestoreRoundTrip(t *testing.T) {
	const size = 0x100
	path := newTarget(t, size)
	original := readTarget(t, path)

	if _, err := CreateBackup(path); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if err := Validate(path, size); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	applier, err := NewApplier(path)
	if err != nil {
		t.Fatalf("NewApplier() error = %v", err)
	}

	patches := []Patch{
		{Offset: 0x00, Data: []byte{0x4D, 0x5A}},
		{Offset: 0x40, Data: bytes.Repeat([]byte{0x90}, 16)},
		{Offset: 0xFE, Data: []byte{0xC3, 0xC3}},
	}
	if failed := Failed(applier.Apply(patches)); failed != 0 {
		t.Fatalf("Failed() = %d, want 0", failed)
	}
	if err := applier.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Sanity: the target actually changed.
	if bytes.Equal(readTarget(t, path), original) {
		t.Fatal("target unchanged after patching")
	}

	if err := RestoreBackup(path); err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}

	if got := readTarget(t, path); !bytes.Equal(got, original) {
		t.Error("restored target differs from pre-patch bytes")
	}
}

// TestWrongSizeLeavesBackup mirrors the pipeline's order: the backup is
// created before validation, so a wrong-size target still gets a backup
// but no patches.
func TestWrongSizeLeavesBackup(t *testing.T) {
	path := newTarget(t, 0x80)

	if _, err := CreateBackup(path); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if err := Validate(path, 0x100); err == nil {
		t.Fatal("Validate() error = nil, want size mismatch")
	}

	// Pipeline stops here: target bytes untouched, backup on disk.
	if got := readTarget(t, path); !bytes.Equal(got, make([]byte, 0x80)) {
		t.Error("target was modified despite failed validation")
	}
	if got := readTarget(t, BackupPath(path)); !bytes.Equal(got, make([]byte, 0x80)) {
		t.Error("backup content differs from target")
	}
}

func TestInspect(t *testing.T) {
	path := newTarget(t, 0x40)

	set := &Set{
		Name:       "test",
		TargetSize: 0x40,
		Patches: []Patch{
			{Offset: 0x10, Data: []byte{0xAA}},
			{Offset: 0x20, Data: []byte{0xBB, 0xCC}},
		},
	}

	info, err := Inspect(path, set)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}

	if info.FileSize != 0x40 {
		t.Errorf("FileSize = %d, want %d", info.FileSize, 0x40)
	}
	if !info.SizeValid {
		t.Error("SizeValid = false, want true")
	}
	if info.HasBackup {
		t.Error("HasBackup = true, want false")
	}
	if info.PatchedBytes != 3 {
		t.Errorf("PatchedBytes = %d, want 3", info.PatchedBytes)
	}

	if _, err := CreateBackup(path); err != nil {
		t.Fatal(err)
	}

	info, err = Inspect(path, set)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if !info.HasBackup {
		t.Error("HasBackup = false after backup, want true")
	}
}
