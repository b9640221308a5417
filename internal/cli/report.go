// Package cli provides command-line interface utilities.
package cli

import (
	"fmt"
	"strings"

	"github.com/ZacharyZcR/BytePatch/internal/patch"
	"github.com/fatih/color"
)

// Reporter formats and prints patch target reports.
type Reporter struct {
	info    *patch.Info
	verbose bool
}

// NewReporter creates a new reporter for the given target info.
func NewReporter(info *patch.Info) *Reporter {
	return &Reporter{info: info}
}

// SetVerbose enables verbose mode (show all patch entries).
func (r *Reporter) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// Print outputs the complete target report.
func (r *Reporter) Print() {
	r.printHeader()
	r.printTarget()
	r.printPatches()
}

func (r *Reporter) printHeader() {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Println("\n╔════════════════════════════════════════╗")
	cyan.Println("║          BytePatch 目标报告            ║")
	cyan.Println("╚════════════════════════════════════════╝")
}

func (r *Reporter) printTarget() {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Println("\n【目标信息】")

	fmt.Printf("  %-20s: %s\n", "文件路径", r.info.FilePath)
	fmt.Printf("  %-20s: %s (%d 字节)\n", "文件大小", formatSize(r.info.FileSize), r.info.FileSize)
	fmt.Printf("  %-20s: %s (%d 字节)\n", "期望大小", formatSize(r.info.ExpectedSize), r.info.ExpectedSize)

	fmt.Printf("  %-20s: ", "大小校验")
	if r.info.SizeValid {
		green := color.New(color.FgGreen)
		green.Print("✓ 通过")
	} else {
		red := color.New(color.FgRed, color.Bold)
		red.Print("✗ 不匹配")
	}
	fmt.Println()

	fmt.Printf("  %-20s: ", "备份")
	if r.info.HasBackup {
		green := color.New(color.FgGreen)
		green.Printf("已存在 (%s)", r.info.BackupPath)
	} else {
		gray := color.New(color.FgHiBlack)
		gray.Print("未创建")
	}
	fmt.Println()
}

func (r *Reporter) printPatches() {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Printf("\n【补丁列表】'%s' (共 %d 个, %d 字节)\n",
		r.info.SetName, len(r.info.Patches), r.info.PatchedBytes)

	if len(r.info.Patches) == 0 {
		fmt.Println("  补丁列表为空")
		return
	}

	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("  %-6s %-12s %-8s %s\n", "序号", "偏移", "长度", "说明")
	fmt.Println(strings.Repeat("-", 72))

	maxDisplay := 10
	if r.verbose {
		maxDisplay = len(r.info.Patches) // Show all in verbose mode
	}

	displayCount := len(r.info.Patches)
	if displayCount > maxDisplay {
		displayCount = maxDisplay
	}

	for i := 0; i < displayCount; i++ {
		p := r.info.Patches[i]

		// Highlight entries that fall outside the expected image.
		offColor := color.New(color.FgWhite)
		if p.End() > r.info.ExpectedSize {
			offColor = color.New(color.FgRed, color.Bold)
		}

		fmt.Printf("  %-6d ", i+1)
		offColor.Printf("0x%08X", p.Offset)
		fmt.Printf("   %-8d %s\n", len(p.Data), p.Desc)
	}

	if len(r.info.Patches) > maxDisplay {
		gray := color.New(color.FgHiBlack)
		gray.Printf("  ... (还有 %d 个补丁)\n", len(r.info.Patches)-maxDisplay)
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Println()
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
