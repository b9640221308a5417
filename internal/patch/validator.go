package patch

import (
	"fmt"
	"io"
	"os"
)

// Validate reports whether the file at path is a valid patch target.
// The target must exist, open cleanly and have exactly the expected size.
// Size is the only fingerprint checked: any modification to the known
// target version is assumed to change it.
func Validate(path string, want int64) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("未找到目标文件: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("打开目标文件失败: %w", err)
	}
	defer func() { _ = file.Close() }()

	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("获取文件大小失败: %w", err)
	}

	if size != want {
		return fmt.Errorf("校验失败: 文件大小 %d 字节, 期望 %d 字节", size, want)
	}

	return nil
}
