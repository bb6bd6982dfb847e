package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders progress of a determinate operation such as
// record generation.
type ProgressBar struct {
	ui      *UI
	bar     progress.Model
	label   string
	total   int64
	current int64
	start   time.Time
	mu      sync.Mutex
	started bool
}

// NewProgressBar creates a new progress bar.
func (u *UI) NewProgressBar(label string, total int64) *ProgressBar {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return &ProgressBar{
		ui:    u,
		bar:   bar,
		label: label,
		total: total,
		start: time.Now(),
	}
}

// Update sets the current progress value.
func (p *ProgressBar) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	p.render()
}

// Report adapts the bar to a generator progress callback.
func (p *ProgressBar) Report(done, total int) {
	p.mu.Lock()
	p.total = int64(total)
	p.mu.Unlock()

	p.Update(int64(done))
}

// render draws the bar. Callers hold p.mu.
func (p *ProgressBar) render() {
	if !p.ui.shouldStyle() {
		// Plain output gets the label once and the result on Complete
		if !p.started {
			fmt.Fprintf(p.ui.Out, "%s: ", p.label)
			p.started = true
		}
		return
	}

	pct := 0.0
	if p.total > 0 {
		pct = float64(p.current) / float64(p.total)
	}
	if pct > 1 {
		pct = 1
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	countStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s",
		labelStyle.Render(p.label),
		p.bar.ViewAs(pct),
		countStyle.Render(fmt.Sprintf("%d/%d", p.current, p.total)),
	)
}

// Complete finishes the progress bar with a success indicator.
func (p *ProgressBar) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.start).Round(time.Millisecond)

	if !p.ui.shouldStyle() {
		if !p.started {
			fmt.Fprintf(p.ui.Out, "%s: ", p.label)
		}
		fmt.Fprintf(p.ui.Out, "%d/%d done in %s\n", p.current, p.total, elapsed)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)

	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
		StyleSuccess.Render(SymbolSuccess),
		labelStyle.Render(p.label),
		StyleSuccess.Render(fmt.Sprintf("%d/%d complete in %s", p.current, p.total, elapsed)),
	)
}
