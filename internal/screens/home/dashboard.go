package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/theme"
)

const titleFull = ` ██████╗ ██████╗ ██╗██╗     ██╗
 ██╔══██╗██╔══██╗██║██║     ██║
 ██║  ██║██████╔╝██║██║     ██║
 ██║  ██║██╔══██╗██║██║     ██║
 ██████╔╝██║  ██║██║███████╗███████╗
 ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚══════╝`

const titleCompact = "D · R · I · L · L"

// descriptionLines caps the exercise description shown under the menu.
const descriptionLines = 3

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
}

// renderStatsBar renders collection totals in a bordered box of content width.
func renderStatsBar(items, mastered, due, cw int, compact bool) string {
	itemStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	masteredStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dueStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			itemStyle.Render(fmt.Sprintf("▤%d", items)),
			masteredStyle.Render(fmt.Sprintf("★%d", mastered)),
			dueText(due, true, dueStyle, dim),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			itemStyle.Render(fmt.Sprintf("▤ %d ITEMS", items)),
			masteredStyle.Render(fmt.Sprintf("★ %d MASTERED", mastered)),
			dueText(due, false, dueStyle, dim),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func dueText(due int, compact bool, active, dim lipgloss.Style) string {
	if due == 0 {
		if compact {
			return dim.Render("⚡0")
		}
		return dim.Render("⚡ NONE DUE")
	}
	if compact {
		return active.Render(fmt.Sprintf("⚡%d", due))
	}
	return active.Render(fmt.Sprintf("⚡ %d DUE", due))
}

func renderMenu(menu components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Left).
		Render(menu.View())
}

// renderExerciseDetail shows the tier breakdown and description of the
// highlighted exercise.
func renderExerciseDetail(description string, st progress.Stats, cw int, compact bool) string {
	var lines []string
	lines = append(lines, components.TierBar(st.PerTier, cw-8))

	var legend []string
	for _, t := range mastery.AllTiers {
		legend = append(legend, fmt.Sprintf("%s %d", theme.TierBadge(t), st.PerTier[t]))
	}
	lines = append(lines, strings.Join(legend, "  "))

	if st.TotalAnswered > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("%d answers · %d%% correct", st.TotalAnswered, st.CorrectRate)))
	}

	if description != "" && !compact {
		desc := strings.Split(description, "\n")
		if len(desc) > descriptionLines {
			desc = append(desc[:descriptionLines], "…")
		}
		lines = append(lines, "", theme.Hint.Width(cw-8).Render(strings.Join(desc, "\n")))
	}

	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
