package patch

import (
	"fmt"
	"os"
)

// Info describes a patch target and the set that would be applied to it.
type Info struct {
	FilePath     string
	FileSize     int64
	ExpectedSize int64
	SizeValid    bool
	BackupPath   string
	HasBackup    bool
	SetName      string
	Patches      []Patch
	PatchedBytes int64
}

// Inspect gathers target and patch set information for reporting. It opens
// no write handle and mutates nothing.
func Inspect(path string, set *Set) (*Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("未找到目标文件: %s", path)
	}

	info := &Info{
		FilePath:     path,
		FileSize:     stat.Size(),
		ExpectedSize: set.TargetSize,
		SizeValid:    stat.Size() == set.TargetSize,
		BackupPath:   BackupPath(path),
		SetName:      set.Name,
		Patches:      set.Patches,
	}

	for _, p := range set.Patches {
		info.PatchedBytes += int64(len(p.Data))
	}

	if _, err := os.Stat(info.BackupPath); err == nil {
		info.HasBackup = true
	}

	return info, nil
}
