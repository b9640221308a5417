package patch

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Patch is one (offset, byte sequence) edit instruction. Immutable once
// loaded; entries carry no ordering dependency between each other.
type Patch struct {
	Offset int64
	Data   []byte
	Desc   string
}

// End returns the offset one past the last byte the patch writes.
func (p Patch) End() int64 {
	return p.Offset + int64(len(p.Data))
}

// Set is an externally supplied patch table: the expected target size
// fingerprint plus the full edit list.
type Set struct {
	Name       string
	TargetSize int64
	Patches    []Patch
}

// setFile mirrors the YAML layout of a patch set file.
type setFile struct {
	Name       string      `yaml:"name"`
	TargetSize int64       `yaml:"target_size"`
	Patches    []patchFile `yaml:"patches"`
}

// patchFile is one YAML patch entry: either an explicit hex byte string
// or a repeated-value run (fill + count).
type patchFile struct {
	Offset int64  `yaml:"offset"`
	Bytes  string `yaml:"bytes,omitempty"`
	Fill   *int   `yaml:"fill,omitempty"`
	Count  int    `yaml:"count,omitempty"`
	Desc   string `yaml:"desc,omitempty"`
}

//go:embed wow_1_12_1.yaml
var defaultSetData []byte

// DefaultSet returns the built-in reference patch table.
func DefaultSet() (*Set, error) {
	return LoadSet(defaultSetData)
}

// LoadSetFile loads and validates a patch set from a YAML file.
func LoadSetFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取补丁配置失败: %w", err)
	}

	set, err := LoadSet(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// LoadSet parses and validates a YAML patch set. Unknown fields, malformed
// entries and overlapping offsets are all load-time errors.
func LoadSet(data []byte) (*Set, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sf setFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("解析补丁配置失败: %w", err)
	}

	if sf.TargetSize <= 0 {
		return nil, fmt.Errorf("target_size 必须大于0")
	}
	if len(sf.Patches) == 0 {
		return nil, fmt.Errorf("补丁列表不能为空")
	}

	set := &Set{Name: sf.Name, TargetSize: sf.TargetSize}
	for i, pf := range sf.Patches {
		p, err := pf.toPatch()
		if err != nil {
			return nil, fmt.Errorf("补丁 #%d: %w", i+1, err)
		}
		set.Patches = append(set.Patches, p)
	}

	if err := checkOverlap(set.Patches); err != nil {
		return nil, err
	}

	return set, nil
}

func (pf patchFile) toPatch() (Patch, error) {
	if pf.Offset < 0 {
		return Patch{}, fmt.Errorf("offset 不能为负数")
	}

	hasBytes := pf.Bytes != ""
	hasFill := pf.Fill != nil

	var data []byte
	switch {
	case hasBytes && hasFill:
		return Patch{}, fmt.Errorf("bytes 和 fill 只能指定其一")
	case hasBytes:
		if pf.Count != 0 {
			return Patch{}, fmt.Errorf("count 只能与 fill 搭配使用")
		}
		decoded, err := decodeHexBytes(pf.Bytes)
		if err != nil {
			return Patch{}, err
		}
		data = decoded
	case hasFill:
		if *pf.Fill < 0 || *pf.Fill > 0xFF {
			return Patch{}, fmt.Errorf("fill 必须是单个字节值 (0-255)")
		}
		if pf.Count < 1 {
			return Patch{}, fmt.Errorf("count 必须大于0")
		}
		data = bytes.Repeat([]byte{byte(*pf.Fill)}, pf.Count)
	default:
		return Patch{}, fmt.Errorf("必须指定 bytes 或 fill")
	}

	return Patch{Offset: pf.Offset, Data: data, Desc: pf.Desc}, nil
}

func decodeHexBytes(s string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("解析十六进制字节失败: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("bytes 不能为空")
	}
	return data, nil
}

// checkOverlap rejects any pair of patches whose byte ranges intersect.
func checkOverlap(patches []Patch) error {
	sorted := make([]Patch, len(patches))
	copy(sorted, patches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Offset < prev.End() {
			return fmt.Errorf("补丁偏移重叠: 0x%X 与 0x%X", prev.Offset, cur.Offset)
		}
	}
	return nil
}
