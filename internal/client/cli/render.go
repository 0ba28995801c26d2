package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/farag11/daheeh/internal/client/models"
)

const progressBarWidth = 20

// rankPalette maps the default rank colours to terminal colours.
var rankPalette = map[string]color.Attribute{
	"#9CA3AF": color.FgHiBlack,
	"#22C55E": color.FgGreen,
	"#3B82F6": color.FgBlue,
	"#A855F7": color.FgMagenta,
	"#F59E0B": color.FgYellow,
	"#EF4444": color.FgRed,
}

var (
	xpColor   = color.New(color.FgCyan, color.Bold)
	warnColor = color.New(color.FgYellow)
)

func rankColor(r models.RankInfo) *color.Color {
	attr, ok := rankPalette[strings.ToUpper(r.Color)]
	if !ok {
		attr = color.FgWhite
	}
	return color.New(attr, color.Bold)
}

func sessionLine(s models.Session) string {
	switch s.Mode {
	case models.AuthModeAuthenticated:
		return fmt.Sprintf("Signed in as %s <%s> via %s", s.User.DisplayName, s.User.Email, s.User.Provider)
	case models.AuthModeGuest:
		return "Guest session"
	default:
		return "Not signed in"
	}
}

func progressLines(s models.GamificationState, rank models.RankInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level %d %s\n", s.Level, rankColor(rank).Sprint(rank.Name))
	fmt.Fprintf(&b, "%s %d/%d xp (%d to next level)\n",
		progressBar(s.XPProgress(), progressBarWidth), s.XP%models.XPPerLevel, models.XPPerLevel, s.XPToNextLevel())
	fmt.Fprintf(&b, "Streak: %d day(s), total earned: %d xp", s.Streak, s.TotalXPEarned)
	return b.String()
}

func progressBar(p float64, width int) string {
	filled := min(max(int(p*float64(width)), 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func toastLine(t models.Toast) string {
	return xpColor.Sprintf("+%d XP", t.Amount) + " " + string(t.Reason)
}

func celebrate(from, to int, rank models.RankInfo) string {
	return fmt.Sprintf("Level up! %d -> %d (%s)", from, to, rankColor(rank).Sprint(rank.Name))
}

func warn(msg string) string {
	return warnColor.Sprint(msg)
}

func (a *App) prompt() string {
	s := a.sessions.Current()
	state := a.engine.State()

	who := "-"
	switch s.Mode {
	case models.AuthModeAuthenticated:
		who = s.User.DisplayName
	case models.AuthModeGuest:
		who = "guest"
	}
	return fmt.Sprintf("(%s L%d)", who, state.Level)
}
