// Package main provides the BytePatch CLI tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ZacharyZcR/BytePatch/internal/cli"
	"github.com/ZacharyZcR/BytePatch/internal/patch"
	"github.com/fatih/color"
)

var (
	patchesFile = flag.String("patches", "", "补丁配置文件路径 (YAML，默认使用内置补丁表)")
	restoreMode = flag.Bool("restore", false, "恢复模式：从备份恢复目标文件")
	infoMode    = flag.Bool("info", false, "信息模式：显示目标文件和补丁表信息")
	verbose     = flag.Bool("v", false, "详细模式：显示每个补丁的应用结果")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	target := flag.Arg(0)

	var err error
	switch {
	case *restoreMode:
		err = restoreTarget(target)
	case *infoMode:
		err = showInfo(target)
	default:
		err = patchTarget(target)
	}

	if err != nil {
		red := color.New(color.FgRed, color.Bold)
		_, _ = red.Fprintf(os.Stderr, "\n错误: %v\n\n", err)
		os.Exit(1)
	}
}

func loadSet() (*patch.Set, error) {
	if *patchesFile != "" {
		return patch.LoadSetFile(*patchesFile)
	}
	return patch.DefaultSet()
}

// patchTarget runs the full pipeline: backup, validate, open, apply, close.
// Pipeline-stage failures abort the run; per-patch failures are logged and
// do not change the exit status.
func patchTarget(target string) error {
	set, err := loadSet()
	if err != nil {
		return err
	}

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("未找到目标文件: %s", target)
	}

	backupPath, err := patch.CreateBackup(target)
	if err != nil {
		return fmt.Errorf("创建备份失败: %w", err)
	}
	green := color.New(color.FgGreen)
	_, _ = green.Printf("✓ 已创建备份: %s\n", backupPath)

	if err := patch.Validate(target, set.TargetSize); err != nil {
		return err
	}
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Println("✓ 目标文件校验通过")

	applier, err := patch.NewApplier(target)
	if err != nil {
		return err
	}
	defer func() { _ = applier.Close() }()

	_, _ = cyan.Printf("正在应用补丁表 '%s' (%d 个补丁)...\n", set.Name, len(set.Patches))
	results := applier.Apply(set.Patches)
	printResults(results)

	return nil
}

func printResults(results []patch.Result) {
	yellow := color.New(color.FgYellow)

	for _, res := range results {
		if res.Err != nil {
			_, _ = yellow.Printf("⚠️  跳过补丁 0x%X: %v\n", res.Patch.Offset, res.Err)
		} else if *verbose {
			fmt.Printf("  0x%08X  %3d 字节  %s\n", res.Patch.Offset, len(res.Patch.Data), res.Patch.Desc)
		}
	}

	green := color.New(color.FgGreen, color.Bold)
	failed := patch.Failed(results)
	fmt.Println()
	if failed == 0 {
		_, _ = green.Printf("✓ 补丁应用完成: %d 个补丁全部成功\n\n", len(results))
	} else {
		_, _ = green.Printf("✓ 补丁应用完成: %d 个成功, %d 个失败\n\n", len(results)-failed, failed)
	}
}

func restoreTarget(target string) error {
	if err := patch.RestoreBackup(target); err != nil {
		return err
	}

	green := color.New(color.FgGreen, color.Bold)
	_, _ = green.Printf("✓ 已从备份恢复: %s\n", target)
	return nil
}

func showInfo(target string) error {
	set, err := loadSet()
	if err != nil {
		return err
	}

	info, err := patch.Inspect(target, set)
	if err != nil {
		return err
	}

	reporter := cli.NewReporter(info)
	reporter.SetVerbose(*verbose)
	reporter.Print()
	return nil
}

func printUsage() {
	cyan := color.New(color.FgCyan, color.Bold)
	_, _ = cyan.Println("\nBytePatch - 二进制文件补丁工具")

	fmt.Println("\n用法:")
	fmt.Println("  bytepatch [选项] <目标文件路径>")

	fmt.Println("\n选项:")
	fmt.Println("  -patches <路径>  补丁配置文件 (YAML，默认使用内置补丁表)")
	fmt.Println("  -restore         从备份恢复目标文件 (目标路径 + .backup)")
	fmt.Println("  -info            显示目标文件和补丁表信息，不做任何修改")
	fmt.Println("  -v               详细模式：显示每个补丁的应用结果")

	fmt.Println("\n说明:")
	fmt.Println("  应用补丁前会自动创建备份 (目标路径 + .backup)，并校验文件大小。")
	fmt.Println("  校验失败或备份失败时不会写入任何字节。")
	fmt.Println("  单个补丁写入失败只会跳过该补丁，其余补丁仍会应用。")

	fmt.Println("\n示例:")
	fmt.Println("  # 使用内置补丁表")
	fmt.Println("  bytepatch WoW.exe")
	fmt.Println("\n  # 使用外部补丁配置")
	fmt.Println("  bytepatch -patches fixes.yaml WoW.exe")
	fmt.Println("\n  # 查看目标和补丁表信息")
	fmt.Println("  bytepatch -info WoW.exe")
	fmt.Println("  bytepatch -info -v WoW.exe")
	fmt.Println("\n  # 从备份恢复")
	fmt.Println("  bytepatch -restore WoW.exe")
	fmt.Println()
}
