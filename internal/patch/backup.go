package patch

import (
	"fmt"
	"io"
	"os"
)

// BackupSuffix is appended to the target path to form its backup path.
const BackupSuffix = ".backup"

// BackupPath returns the backup path for the given target.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies the target to its sibling backup path, overwriting
// any previous backup, and returns the backup path. The backup is the sole
// recovery mechanism and must exist before any byte of the target is
// mutated.
func CreateBackup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("打开源文件失败: %w", err)
	}
	defer func() { _ = src.Close() }()

	backupPath := BackupPath(path)
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("创建备份文件失败: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", fmt.Errorf("复制备份数据失败: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("关闭备份文件失败: %w", err)
	}

	return backupPath, nil
}

// RestoreBackup replaces the target with its backup copy: the target is
// removed and the backup renamed into its place, consuming the backup.
// This destroys any patched state.
func RestoreBackup(path string) error {
	backupPath := BackupPath(path)
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("未找到备份文件: %s", backupPath)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除目标文件失败: %w", err)
	}

	if err := os.Rename(backupPath, path); err != nil {
		return fmt.Errorf("恢复备份失败: %w", err)
	}

	return nil
}
