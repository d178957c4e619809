package panels

import (
	"fmt"
	"os"
	"time"

	"dmg-core/internal/debug"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogViewer creates a panel showing recent log entries with per-component
// filters; entries are not filtered by level here. Returns the container and an update function to
// call periodically.
func LogViewer(logger *debug.Logger, window fyne.Window) (*fyne.Container, func()) {
	logText := widget.NewMultiLineEntry()
	logText.Wrapping = fyne.TextWrapOff
	logText.Disable() // read-only but selectable
	logScroll := container.NewScroll(logText)
	logScroll.SetMinSize(fyne.NewSize(600, 400))

	// Component filter checkboxes
	components := []struct {
		name      string
		component debug.Component
		check     *widget.Check
	}{
		{"CPU", debug.ComponentCPU, nil},
		{"PPU", debug.ComponentPPU, nil},
		{"Memory", debug.ComponentMemory, nil},
		{"Input", debug.ComponentInput, nil},
		{"UI", debug.ComponentUI, nil},
		{"System", debug.ComponentSystem, nil},
	}
	checkBoxes := make([]fyne.CanvasObject, 0, len(components))
	for i := range components {
		components[i].check = widget.NewCheck(components[i].name, nil)
		components[i].check.SetChecked(true)
		checkBoxes = append(checkBoxes, components[i].check)
	}

	updateFunc := func() {
		if logger == nil {
			logText.SetText("Logger not available")
			return
		}

		enabled := make(map[debug.Component]bool)
		for _, c := range components {
			enabled[c.component] = c.check.Checked
		}

		var text string
		for _, entry := range logger.GetRecentEntries(500) {
			if !enabled[entry.Component] {
				continue
			}
			text += entry.Format() + "\n"
		}
		if text == "" {
			text = "No log entries"
		}
		logText.SetText(text)
	}

	for i := range components {
		components[i].check.OnChanged = func(bool) { updateFunc() }
	}

	copyBtn := widget.NewButton("Copy All", func() {
		if logText.Text != "" && window != nil {
			window.Clipboard().SetContent(logText.Text)
		}
	})

	saveBtn := widget.NewButton("Save Logs", func() {
		filename := fmt.Sprintf("logs_%s.txt", time.Now().Format("20060102_150405"))
		if err := os.WriteFile(filename, []byte(logText.Text), 0o644); err != nil {
			fmt.Printf("Error saving logs: %v\n", err)
		} else {
			fmt.Printf("Logs saved to: %s\n", filename)
		}
	})

	clearBtn := widget.NewButton("Clear", func() {
		logger.Clear()
		updateFunc()
	})

	updateFunc()

	return container.NewVBox(
		widget.NewLabel("Log Viewer"),
		container.NewHBox(checkBoxes...),
		container.NewHBox(copyBtn, saveBtn, clearBtn),
		logScroll,
	), updateFunc
}
