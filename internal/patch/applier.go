package patch

import (
	"fmt"
	"os"
)

// Applier owns the open read/write handle on the target and sequences a
// patch list through the byte writer. Callers must Close it after the last
// write.
type Applier struct {
	filepath string
	file     *os.File
	writer   *Writer
}

// NewApplier opens the target file for patching. The target is expected to
// be already backed up and validated.
func NewApplier(filepath string) (*Applier, error) {
	file, err := os.OpenFile(filepath, os.O_RDWR, 0666)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}

	writer, err := NewWriter(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return &Applier{
		filepath: filepath,
		file:     file,
		writer:   writer,
	}, nil
}

// Close closes the applier and releases the file handle.
func (a *Applier) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

// Result records the outcome of one patch entry.
type Result struct {
	Patch Patch
	Err   error
}

// Apply applies every patch in list order. A failed entry is recorded in
// its Result and the remaining entries still run; there is no early abort.
func (a *Applier) Apply(patches []Patch) []Result {
	results := make([]Result, 0, len(patches))
	for _, p := range patches {
		results = append(results, Result{
			Patch: p,
			Err:   a.writer.WriteBytesAt(p.Offset, p.Data),
		})
	}
	return results
}

// Failed returns how many results carry an error.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
