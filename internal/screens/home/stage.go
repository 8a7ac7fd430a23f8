package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/quizling/quizling/internal/ui/components"
	"github.com/quizling/quizling/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const stageTitleFull = ` ██████╗ ██╗   ██╗██╗███████╗██╗     ██╗███╗   ██╗ ██████╗
██╔═══██╗██║   ██║██║╚══███╔╝██║     ██║████╗  ██║██╔════╝
██║   ██║██║   ██║██║  ███╔╝ ██║     ██║██╔██╗ ██║██║  ███╗
██║▄▄ ██║██║   ██║██║ ███╔╝  ██║     ██║██║╚██╗██║██║   ██║
╚██████╔╝╚██████╔╝██║███████╗███████╗██║██║ ╚████║╚██████╔╝
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝`

const stageTitleCompact = "Q · U · I · Z · L · I · N · G"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true)

	if compact || cw < 60 {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(stageTitleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(stageTitleFull))
}

// renderStatsBar renders the lifetime numbers in a bordered box matching
// content width.
func renderStatsBar(level string, score int, best float64, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	levelLabel := strings.ToUpper(level)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			levelStyle.Render(levelLabel),
			scoreStyle.Render(fmt.Sprintf("★%d", score)),
			bestText(best, true, bestStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			levelStyle.Render(fmt.Sprintf("LVL %s", levelLabel)),
			scoreStyle.Render(fmt.Sprintf("★ %d PTS", score)),
			bestText(best, false, bestStyle, dimStyle),
		)
	}

	// Wrap in a double-border box at the same content width
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func bestText(best float64, compact bool, active, dim lipgloss.Style) string {
	if best <= 0 {
		if compact {
			return dim.Render("◎ --")
		}
		return dim.Render("◎ NO RUNS YET")
	}
	if compact {
		return active.Render(fmt.Sprintf("◎%.0f%%", best))
	}
	return active.Render(fmt.Sprintf("◎ %.0f%% BEST", best))
}

// menuButtonWidth is the fixed width for menu buttons.
const menuButtonWidth = 26

// renderStageMenu renders each menu item as a fixed-width button.
func renderStageMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.StageButton(label, i == selected, menuButtonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderStageMenuCompact renders menu items as simple text lines (no
// borders) for very small terminals where bordered buttons overflow.
func renderStageMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Gold).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderLLMBanner renders a hint when no LLM API key is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to generate new questions (see quizling --help)")
}

// renderStatus renders a one-line status flash under the menu.
func renderStatus(status string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Success).
		Width(cw).
		Align(lipgloss.Center).
		Render(status)
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderResetConfirm renders the destructive-reset confirmation inside
// a card so it stands apart from the menu behind it.
func renderResetConfirm(cw int) string {
	inner := cw - 6

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Reset all progress?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Score, level and history will be wiped. This cannot be undone."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, wipe everything"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep my progress"))

	return components.StageCard(b.String(), cw)
}
