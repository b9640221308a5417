// Package patch provides validated, reversible byte-level patching of a
// single target file.
package patch

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Writer writes bytes at absolute offsets within an open target file.
// Every write explicitly seeks to its offset first; the cursor is left
// past the written bytes afterwards.
type Writer struct {
	file *os.File
	size int64
}

// NewWriter creates a writer for the given open, writable file.
func NewWriter(file *os.File) (*Writer, error) {
	if file == nil {
		return nil, fmt.Errorf("文件未打开")
	}

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("获取文件信息失败: %w", err)
	}

	return &Writer{file: file, size: stat.Size()}, nil
}

// WriteBytesAt seeks to offset and writes data sequentially from there.
func (w *Writer) WriteBytesAt(offset int64, data []byte) error {
	if w.file == nil {
		return fmt.Errorf("文件未打开")
	}
	if len(data) == 0 {
		return fmt.Errorf("写入数据不能为空")
	}

	// Writing past EOF would silently grow the file instead of failing,
	// so a write that does not fit inside the image counts as a seek
	// failure and the file is never extended.
	if offset < 0 || offset+int64(len(data)) > w.size {
		return fmt.Errorf("偏移 0x%X 超出文件范围 (文件大小: %d 字节)", offset, w.size)
	}

	if _, err := w.file.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("定位到偏移 0x%X 失败: %w", offset, err)
	}

	if _, err := w.file.Write(data); err != nil {
		return fmt.Errorf("在偏移 0x%X 写入失败: %w", offset, err)
	}

	return nil
}

// WriteByteAt writes a single byte at offset.
func (w *Writer) WriteByteAt(offset int64, value byte) error {
	return w.WriteBytesAt(offset, []byte{value})
}

// WriteRepeatedAt writes n copies of value starting at offset. The run is
// materialized as a single buffer and issued as one write.
func (w *Writer) WriteRepeatedAt(offset int64, value byte, n int) error {
	if n < 1 {
		return fmt.Errorf("重复写入长度必须大于0")
	}
	return w.WriteBytesAt(offset, bytes.Repeat([]byte{value}, n))
}
