// Package report renders a profile for the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

const barUnit = 5 // percent per bar cell

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pillarStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))

	elementColors = map[engine.Element]lipgloss.Color{
		engine.Wood:  lipgloss.Color("#52C41A"),
		engine.Fire:  lipgloss.Color("#FF4D4F"),
		engine.Earth: lipgloss.Color("#FAAD14"),
		engine.Metal: lipgloss.Color("#B0B0B0"),
		engine.Water: lipgloss.Color("#1890FF"),
	}
)

// Render lays out the pillars, the element balance, the yongsin, the daeun
// periods and the seun year.
func Render(p *engine.Profile, text engine.Narrative) string {
	sections := []string{
		titleStyle.Render(text.Text(config.TKeyReportTitle, map[string]any{"Name": p.UserInfo.Name})),
		renderPillars(p, text),
		renderElements(p, text),
		renderYongsin(p, text),
		renderDaeun(p, text),
		renderSeun(p, text),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func renderPillars(p *engine.Profile, text engine.Narrative) string {
	labels := strings.Fields(text.Text(config.TKeyReportLabels, nil))
	pillars := []engine.Pillar{p.Pillars.Year, p.Pillars.Month, p.Pillars.Day, p.Pillars.Hour}

	cells := make([]string, 0, len(pillars))
	for i, pillar := range pillars {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		cells = append(cells, pillarStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			headerStyle.Render(label),
			pillar.Gan(),
			pillar.Ji(),
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		headerStyle.Render(text.Text(config.TKeyReportPillars, nil)),
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
	)
}

func renderElements(p *engine.Profile, text engine.Narrative) string {
	lines := []string{"", headerStyle.Render(text.Text(config.TKeyReportElems, nil))}
	for _, e := range engine.Elements {
		share := p.ElementBalance[e]
		bar := lipgloss.NewStyle().Foreground(elementColors[e]).Render(strings.Repeat("█", share.Percentage/barUnit))
		lines = append(lines, fmt.Sprintf("%s %s %3d%% %s %s",
			e.Hanja(), e.String(), share.Percentage, bar, mutedStyle.Render(string(share.Status))))
	}
	return strings.Join(lines, "\n")
}

func renderYongsin(p *engine.Profile, text engine.Narrative) string {
	y := p.Yongsin
	return strings.Join([]string{
		"",
		headerStyle.Render(text.Text(config.TKeyReportYongsin, nil)),
		text.Text(config.TKeyReportUseful, map[string]any{
			"Useful":      y.Useful.Element.String() + y.Useful.Hanja,
			"Favorable":   y.Favorable.Element.String() + y.Favorable.Hanja,
			"Unfavorable": y.Unfavorable.Element.String() + y.Unfavorable.Hanja,
		}),
		text.Text(config.TKeyReportLucky, map[string]any{
			"Direction": y.LuckyDirection,
			"Color":     y.LuckyColor,
		}),
	}, "\n")
}

func renderDaeun(p *engine.Profile, text engine.Narrative) string {
	lines := []string{"", headerStyle.Render(text.Text(config.TKeyReportDaeun, nil))}
	current, hasCurrent := p.CurrentDaeun()
	for _, d := range p.Daeun {
		line := fmt.Sprintf("%-10s %-9s %s  %s", d.AgeRange, d.Period, d.Ganji, d.Feature.Text)
		switch {
		case hasCurrent && d.StartAge == current.StartAge:
			line = currentStyle.Render("▶ " + line)
		case d.Status == engine.StatusPast:
			line = mutedStyle.Render("  " + line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderSeun(p *engine.Profile, text engine.Narrative) string {
	months := make([]string, 0, len(p.Seun.LuckyMonths))
	for _, m := range p.Seun.LuckyMonths {
		months = append(months, strconv.Itoa(m))
	}
	return strings.Join([]string{
		"",
		headerStyle.Render(text.Text(config.TKeyReportSeun, map[string]any{"Year": p.Seun.Year, "Ganji": p.Seun.Ganji})),
		p.Seun.FirstHalf,
		p.Seun.SecondHalf,
		text.Text(config.TKeyReportMonths, map[string]any{"Months": strings.Join(months, ", ")}),
	}, "\n")
}
