package patch

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.bin")
	content := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}
	if err := os.WriteFile(path, content, 0666); err != nil {
		t.Fatal(err)
	}

	backupPath, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if backupPath != path+BackupSuffix {
		t.Errorf("backup path = %s, want %s", backupPath, path+BackupSuffix)
	}

	got := readTarget(t, backupPath)
	if !bytes.Equal(got, content) {
		t.Errorf("backup content = % X, want % X", got, content)
	}
}

func TestCreateBackupOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.bin")
	if err := os.WriteFile(path, []byte{0x01, 0x02}, 0666); err != nil {
		t.Fatal(err)
	}
	// Stale backup from an earlier run.
	if err := os.WriteFile(BackupPath(path), []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0666); err != nil {
		t.Fatal(err)
	}

	backupPath, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	got := readTarget(t, backupPath)
	if !bytes.Equal(got, []byte{0x01, 0x02}) {
		t.Errorf("backup content = % X, want current target bytes", got)
	}
}

func TestCreateBackupMissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.bin")

	if _, err := CreateBackup(path); err == nil {
		t.Error("CreateBackup() error = nil, want error")
	}
	if _, err := os.Stat(BackupPath(path)); err == nil {
		t.Error("backup file was created for a missing source")
	}
}

func TestRestoreBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.bin")
	original := []byte{0x10, 0x20, 0x30, 0x40}
	if err := os.WriteFile(path, original, 0666); err != nil {
		t.Fatal(err)
	}

	if _, err := CreateBackup(path); err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	// Corrupt the target after backing it up.
	if err := os.WriteFile(path, []byte{0xFF, 0xFF}, 0666); err != nil {
		t.Fatal(err)
	}

	if err := RestoreBackup(path); err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}

	got := readTarget(t, path)
	if !bytes.Equal(got, original) {
		t.Errorf("restored content = % X, want % X", got, original)
	}

	// The backup is consumed by the restore.
	if _, err := os.Stat(BackupPath(path)); err == nil {
		t.Error("backup still exists after restore")
	}
}

func TestRestoreBackupMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.bin")
	if err := os.WriteFile(path, []byte{0x01}, 0666); err != nil {
		t.Fatal(err)
	}

	if err := RestoreBackup(path); err == nil {
		t.Error("RestoreBackup() error = nil, want backup-not-found error")
	}
}
