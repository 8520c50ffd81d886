package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/services"
)

// ExportTracker renders the latest state of a cookbook export.
type ExportTracker struct {
	last  *services.ExportProgress
	width int
}

func NewExportTracker(width int) *ExportTracker {
	return &ExportTracker{width: width}
}

func (p *ExportTracker) SetWidth(width int) {
	p.width = width
}

func (p *ExportTracker) Update(progress services.ExportProgress) {
	prog := progress
	p.last = &prog
}

func (p *ExportTracker) Clear() {
	p.last = nil
}

// Active reports whether an export is still running.
func (p *ExportTracker) Active() bool {
	return p.last != nil && p.last.Status != "complete" && p.last.Status != "error"
}

func (p *ExportTracker) View() string {
	if p.last == nil {
		return ""
	}
	progress := p.last

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Export"))
	b.WriteString("\n")

	statusText := progress.Status
	if progress.Total > 0 {
		percentage := float64(progress.Current) / float64(progress.Total) * 100
		statusText = fmt.Sprintf("%s (%d/%d recipes - %.0f%%)", progress.Status, progress.Current, progress.Total, percentage)

		b.WriteString(renderProgressBar(progress.Current, progress.Total, p.width-4))
		b.WriteString("\n")
	}
	b.WriteString(styles.StatusStyle(progress.Status).Render(statusText))
	b.WriteString("\n")

	if progress.Path != "" {
		b.WriteString(styles.MutedStyle.Render(progress.Path))
		b.WriteString("\n")
	}
	if progress.Error != nil {
		b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Error)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
	return bar
}
