// Package main provides the BytePatch GUI application.
package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ZacharyZcR/BytePatch/internal/patch"
)

func main() {
	myApp := app.New()
	myWindow := myApp.NewWindow("BytePatch - 二进制文件补丁工具")
	myWindow.Resize(fyne.NewSize(800, 600))

	// Target file path
	targetEntry := widget.NewEntry()
	targetEntry.SetPlaceHolder("选择目标文件...")

	// Patch set path (empty means built-in table)
	setEntry := widget.NewEntry()
	setEntry.SetPlaceHolder("补丁配置文件 (留空使用内置补丁表)")

	// Report output
	reportOutput := widget.NewMultiLineEntry()
	reportOutput.SetPlaceHolder("报告将显示在这里...")
	reportOutput.Disable()

	// Status label
	statusLabel := widget.NewLabel("就绪")

	// File picker buttons
	targetButton := widget.NewButton("选择文件", func() {
		dialog.ShowFileOpen(func(file fyne.URIReadCloser, err error) {
			if err != nil || file == nil {
				return
			}
			defer func() { _ = file.Close() }()
			targetEntry.SetText(file.URI().Path())
		}, myWindow)
	})

	setButton := widget.NewButton("选择补丁表", func() {
		dialog.ShowFileOpen(func(file fyne.URIReadCloser, err error) {
			if err != nil || file == nil {
				return
			}
			defer func() { _ = file.Close() }()
			setEntry.SetText(file.URI().Path())
		}, myWindow)
	})

	// Inspect button
	inspectButton := widget.NewButton("查看信息", func() {
		if targetEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("请先选择目标文件"), myWindow)
			return
		}

		statusLabel.SetText("正在读取目标信息...")
		go func() {
			result, err := inspectTarget(targetEntry.Text, setEntry.Text)
			if err != nil {
				dialog.ShowError(err, myWindow)
				statusLabel.SetText("读取失败")
				return
			}
			reportOutput.SetText(result)
			statusLabel.SetText("读取完成")
		}()
	})

	// Patch button
	patchButton := widget.NewButton("应用补丁", func() {
		if targetEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("请先选择目标文件"), myWindow)
			return
		}

		statusLabel.SetText("正在应用补丁...")
		go func() {
			result, err := applyPatches(targetEntry.Text, setEntry.Text)
			if err != nil {
				dialog.ShowError(err, myWindow)
				statusLabel.SetText("应用失败")
				return
			}
			reportOutput.SetText(result)
			dialog.ShowInformation("成功", "补丁应用完成", myWindow)
			statusLabel.SetText("应用完成")
		}()
	})

	// Restore button
	restoreButton := widget.NewButton("恢复备份", func() {
		if targetEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("请先选择目标文件"), myWindow)
			return
		}

		statusLabel.SetText("正在恢复备份...")
		go func() {
			if err := patch.RestoreBackup(targetEntry.Text); err != nil {
				dialog.ShowError(err, myWindow)
				statusLabel.SetText("恢复失败")
				return
			}
			dialog.ShowInformation("成功", fmt.Sprintf("已从备份恢复: %s", targetEntry.Text), myWindow)
			statusLabel.SetText("恢复完成")
		}()
	})

	// Layout
	targetBox := container.NewBorder(nil, nil, nil, targetButton, targetEntry)
	setBox := container.NewBorder(nil, nil, nil, setButton, setEntry)

	actionBox := container.NewGridWithColumns(3,
		inspectButton,
		patchButton,
		restoreButton,
	)

	mainContent := container.NewBorder(
		container.NewVBox(
			widget.NewLabel("目标文件路径:"),
			targetBox,
			widget.NewLabel("补丁配置:"),
			setBox,
			widget.NewSeparator(),
			actionBox,
		),
		container.NewVBox(
			widget.NewSeparator(),
			statusLabel,
		),
		nil,
		nil,
		container.NewVScroll(reportOutput),
	)

	myWindow.SetContent(mainContent)
	myWindow.ShowAndRun()
}

func loadSet(setPath string) (*patch.Set, error) {
	if setPath != "" {
		return patch.LoadSetFile(setPath)
	}
	return patch.DefaultSet()
}

func inspectTarget(target, setPath string) (string, error) {
	set, err := loadSet(setPath)
	if err != nil {
		return "", err
	}

	info, err := patch.Inspect(target, set)
	if err != nil {
		return "", err
	}

	// Format output
	var output strings.Builder
	output.WriteString(fmt.Sprintf("文件路径: %s\n", info.FilePath))
	output.WriteString(fmt.Sprintf("文件大小: %d 字节\n", info.FileSize))
	output.WriteString(fmt.Sprintf("期望大小: %d 字节\n", info.ExpectedSize))

	if info.SizeValid {
		output.WriteString("大小校验: ✓ 通过\n")
	} else {
		output.WriteString("大小校验: ✗ 不匹配\n")
	}

	if info.HasBackup {
		output.WriteString(fmt.Sprintf("备份: 已存在 (%s)\n", info.BackupPath))
	} else {
		output.WriteString("备份: 未创建\n")
	}

	output.WriteString(fmt.Sprintf("\n补丁表 '%s' (%d 个补丁, %d 字节):\n",
		info.SetName, len(info.Patches), info.PatchedBytes))
	for i, p := range info.Patches {
		output.WriteString(fmt.Sprintf("  %2d. 0x%08X  %3d 字节  %s\n",
			i+1, p.Offset, len(p.Data), p.Desc))
	}

	return output.String(), nil
}

func applyPatches(target, setPath string) (string, error) {
	set, err := loadSet(setPath)
	if err != nil {
		return "", err
	}

	backupPath, err := patch.CreateBackup(target)
	if err != nil {
		return "", fmt.Errorf("创建备份失败: %w", err)
	}

	if err := patch.Validate(target, set.TargetSize); err != nil {
		return "", err
	}

	applier, err := patch.NewApplier(target)
	if err != nil {
		return "", err
	}
	defer func() { _ = applier.Close() }()

	results := applier.Apply(set.Patches)

	var output strings.Builder
	output.WriteString(fmt.Sprintf("已创建备份: %s\n", backupPath))
	output.WriteString(fmt.Sprintf("补丁表: %s\n\n", set.Name))
	for _, res := range results {
		if res.Err != nil {
			output.WriteString(fmt.Sprintf("✗ 0x%08X  跳过: %v\n", res.Patch.Offset, res.Err))
		} else {
			output.WriteString(fmt.Sprintf("✓ 0x%08X  %3d 字节  %s\n",
				res.Patch.Offset, len(res.Patch.Data), res.Patch.Desc))
		}
	}

	failed := patch.Failed(results)
	output.WriteString(fmt.Sprintf("\n完成: %d 个成功, %d 个失败\n", len(results)-failed, failed))

	return output.String(), nil
}
