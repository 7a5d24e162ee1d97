// Package tui renders a game.View and session events for a terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/game"
	"github.com/charmbracelet/lipgloss"
)

var (
	clrBorder = lipgloss.Color("#30363d")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGold   = lipgloss.Color("#e3b341")
	clrGreen  = lipgloss.Color("#3fb950")
	clrRed    = lipgloss.Color("#f85149")
	clrWhite  = lipgloss.Color("#e6edf3")
	clrTitle  = lipgloss.Color("#58a6ff")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bold(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// cellWidth is the printed width of one board cell.
const cellWidth = 4

// widestRow is the widest row of the board, used for centering.
var widestRow = func() int {
	w := 0
	for _, n := range engine.RowSizes {
		w = max(w, n)
	}
	return w
}()

// Board draws the four rows of the tableau.
func Board(v game.View) string {
	var b strings.Builder
	for r, row := range v.Board {
		b.WriteString(strings.Repeat(" ", (widestRow-len(row))*cellWidth/2))
		for _, c := range row {
			b.WriteString(cell(c))
		}
		if r < len(v.Board)-1 {
			b.WriteByte('\n')
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(clrBorder).
		Render(b.String())
}

func cell(c game.CellView) string {
	switch c.Kind {
	case "letter":
		if !c.Revealed {
			return fg(clrSubtle).Render("[  ]")
		}
		return bold(clrWhite).Render("[" + fmt.Sprintf("%-2s", c.Text) + "]")
	case "space":
		return fg(clrGreen).Render(" ·· ")
	default:
		return strings.Repeat(" ", cellWidth)
	}
}

// Players draws the scoreboard.
func Players(v game.View) string {
	lines := make([]string, 0, len(v.Players)+1)
	lines = append(lines, bold(clrTitle).Render(fmt.Sprintf("%-14s %8s %8s", "Giocatore", "Round", "Totale")))
	for _, p := range v.Players {
		marker := "  "
		if p.Current {
			marker = "▶ "
		}
		name := p.Name
		if p.HasJolly {
			name += " ★"
		}
		line := fmt.Sprintf("%s%-12s %8d %8d", marker, name, p.RoundScore, p.TotalScore)
		style := fg(clrWhite)
		if p.Current {
			style = bold(clrGold)
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

// Letters draws the letter panel; used letters are struck out.
func Letters(v game.View) string {
	var cons, vows []string
	for _, l := range v.Letters {
		s := l.Letter
		if l.Used {
			s = fg(clrRed).Render("-")
		} else {
			s = fg(clrWhite).Render(s)
		}
		if l.Vowel {
			vows = append(vows, s)
		} else {
			cons = append(cons, s)
		}
	}
	return "Consonanti: " + strings.Join(cons, " ") + "\nVocali:     " + strings.Join(vows, " ")
}

// Header describes the round.
func Header(v game.View) string {
	if v.Round == 0 {
		return bold(clrTitle).Render("La Ruota della Fortuna")
	}
	title := fmt.Sprintf("Round %d/%d", v.Round, v.Rounds)
	if v.RoundType == string(engine.RoundExpress) {
		title += " · Express"
	}
	out := bold(clrTitle).Render(title)
	if v.Category != "" {
		out += "  " + fg(clrGold).Render(v.Category)
	}
	if v.Description != "" {
		out += "\n" + fg(clrSubtle).Render(v.Description)
	}
	return out
}

// Screen is the whole view: header, board, scoreboard and letter panel.
func Screen(v game.View) string {
	parts := []string{Header(v), Board(v), Players(v)}
	if v.Phase == string(engine.PhasePlaying) {
		parts = append(parts, Letters(v))
	}
	return strings.Join(parts, "\n\n")
}

// Message formats a session event for the status line. Events with nothing
// to say yield "".
func Message(ev game.GameEvent) string {
	who := ""
	if ev.Player != nil {
		who = ev.Player.Name
	}
	switch ev.Type {
	case game.EventGameStart:
		return bold(clrTitle).Render("Si comincia!")
	case game.EventSpinResult:
		return fmt.Sprintf("%s gira la ruota: %v", who, ev.Payload["value"])
	case game.GameEventType(engine.EventRoundStarted):
		return "Nuovo round."
	case game.GameEventType(engine.EventPrize):
		return fmt.Sprintf("%s gioca per %d punti. Chiama una consonante.", who, ev.Points)
	case game.GameEventType(engine.EventJollyChance):
		return fmt.Sprintf("%s gioca per %d punti e il Jolly!", who, ev.Points)
	case game.GameEventType(engine.EventExpress):
		return bold(clrGold).Render(fmt.Sprintf("EXPRESS! %s gioca per %d punti a lettera.", who, ev.Points))
	case game.GameEventType(engine.EventBankrupt):
		return bold(clrRed).Render(fmt.Sprintf("BANCAROTTA! %s perde i punti del round.", who))
	case game.GameEventType(engine.EventPass):
		return bold(clrRed).Render(fmt.Sprintf("PASSA! %s perde il turno.", who))
	case game.GameEventType(engine.EventLetterFound):
		if ev.Count == 1 {
			return fmt.Sprintf("C'è una %s!", ev.Letter)
		}
		return fmt.Sprintf("Ci sono %d %s!", ev.Count, ev.Letter)
	case game.GameEventType(engine.EventLetterMissing):
		return fg(clrRed).Render(fmt.Sprintf("Nessuna %s.", ev.Letter))
	case game.GameEventType(engine.EventLetterUsed):
		return fg(clrRed).Render(fmt.Sprintf("La %s è già stata chiamata!", ev.Letter))
	case game.GameEventType(engine.EventJollyGained):
		return bold(clrGold).Render(fmt.Sprintf("%s vince il Jolly!", who))
	case game.GameEventType(engine.EventJollyPrompt):
		return fmt.Sprintf("%s, vuoi usare il Jolly? (%s)", who, reasonText(ev.Reason))
	case game.GameEventType(engine.EventJollyUsed):
		return fmt.Sprintf("%s usa il Jolly e continua.", who)
	case game.GameEventType(engine.EventExpressFailed):
		return bold(clrRed).Render(fmt.Sprintf("Express fallito: %s perde i punti del round.", who))
	case game.GameEventType(engine.EventTurnLost):
		return fmt.Sprintf("%s perde il turno.", who)
	case game.GameEventType(engine.EventNextPlayer):
		return fmt.Sprintf("Tocca a %s.", who)
	case game.GameEventType(engine.EventSolveStarted):
		return fmt.Sprintf("%s prova a risolvere: %d lettere da indovinare.", who, ev.Count)
	case game.GameEventType(engine.EventSolveWrong):
		return fg(clrRed).Render("Soluzione sbagliata!")
	case game.GameEventType(engine.EventSolveCancelled):
		return "Soluzione annullata."
	case game.GameEventType(engine.EventRoundWon):
		return bold(clrGreen).Render(fmt.Sprintf("%s vince il round con %d punti!", who, ev.Points))
	case game.EventGameEnd:
		return bold(clrGreen).Render(fmt.Sprintf("Partita finita! Vince %v con %d punti.", ev.Payload["winner"], ev.Points))
	case game.EventTurnTimeout:
		return fmt.Sprintf("Tempo scaduto per %s.", who)
	case game.EventGameReset:
		return "Partita annullata."
	}
	return ""
}

func reasonText(reason string) string {
	switch reason {
	case "bankrupt":
		return "bancarotta"
	case "pass":
		return "passa"
	case "wrong-letter":
		return "lettera sbagliata"
	case "used-letter":
		return "lettera già chiamata"
	case "timeout":
		return "tempo scaduto"
	}
	return reason
}
