package game

import (
	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/google/uuid"
)

// CellView is one board cell as the UI should draw it.
type CellView struct {
	Kind     string `json:"kind"` // absent, space or letter
	Text     string `json:"text,omitempty"`
	Revealed bool   `json:"revealed"`
	Index    int    `json:"index"`
}

// LetterView is one key of the letter panel.
type LetterView struct {
	Letter string `json:"letter"`
	Vowel  bool   `json:"vowel"`
	Used   bool   `json:"used"`
}

// PlayerView is a player's row in the scoreboard.
type PlayerView struct {
	Name       string `json:"name"`
	RoundScore int    `json:"roundScore"`
	TotalScore int    `json:"totalScore"`
	HasJolly   bool   `json:"hasJolly"`
	Current    bool   `json:"current"`
}

// View is a render snapshot of the session.
type View struct {
	GameID         uuid.UUID    `json:"gameId"`
	Phase          string       `json:"phase"`
	Turn           string       `json:"turn"`
	Round          int          `json:"round"` // 1-based, 0 before the first round
	Rounds         int          `json:"rounds"`
	RoundType      string       `json:"roundType,omitempty"`
	Category       string       `json:"category,omitempty"`
	Description    string       `json:"description,omitempty"`
	Board          [][]CellView `json:"board"`
	Letters        []LetterView `json:"letters"`
	Players        []PlayerView `json:"players"`
	PendingValue   int          `json:"pendingValue,omitempty"`
	Express        bool         `json:"express"`
	JollyReason    string       `json:"jollyReason,omitempty"`
	SolveRemaining int          `json:"solveRemaining,omitempty"`
	CanBuyVowel    bool         `json:"canBuyVowel"`
	Waiting        bool         `json:"waiting"` // a delayed turn change is pending
}

// View returns the current render snapshot.
func (s *Session) View() View {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.buildView()
}

// buildView assumes the lock is held.
func (s *Session) buildView() View {
	g := &s.Engine
	v := View{
		GameID:         s.ID,
		Phase:          string(g.Phase),
		Turn:           string(g.Turn),
		Rounds:         len(g.Rounds),
		PendingValue:   g.PendingValue,
		Express:        g.Express,
		SolveRemaining: g.SolveRemaining(),
		Waiting:        g.AdvancePending,
	}
	if g.Phase == engine.PhasePlaying {
		v.CanBuyVowel = g.CanBuyVowel()
	}
	if g.Turn == engine.TurnJollyPrompt {
		v.JollyReason = g.JollyReason.String()
	}
	if rc, ok := g.CurrentRoundConfig(); ok && g.Phase != engine.PhaseSetup {
		v.Round = g.CurrentRound + 1
		v.RoundType = string(rc.Type)
	}

	var board engine.Board
	if g.Phrase != nil {
		v.Category = g.Phrase.Category
		v.Description = g.Phrase.Description
		board = engine.Layout(g.Phrase.Text)
	} else {
		board = engine.Layout("")
	}
	v.Board = make([][]CellView, len(board))
	for r, row := range board {
		cells := make([]CellView, len(row))
		for i, c := range row {
			cells[i] = s.cellView(c)
		}
		v.Board[r] = cells
	}

	for r := 'A'; r <= 'Z'; r++ {
		lv := LetterView{Letter: string(r), Vowel: engine.IsVowel(r)}
		if !g.HideCalledLetters {
			lv.Used = g.IsLetterUsed(r)
		}
		v.Letters = append(v.Letters, lv)
	}

	v.Players = make([]PlayerView, len(g.Players))
	for i, p := range g.Players {
		v.Players[i] = PlayerView{
			Name:       p.Name,
			RoundScore: p.RoundScore,
			TotalScore: p.TotalScore,
			HasJolly:   p.HasJolly,
			Current:    i == g.Current && g.Phase == engine.PhasePlaying,
		}
	}
	return v
}

func (s *Session) cellView(c engine.BoardCell) CellView {
	cv := CellView{Index: c.Index}
	switch c.Kind {
	case engine.CellSpace:
		cv.Kind = "space"
		cv.Revealed = true
	case engine.CellLetter:
		cv.Kind = "letter"
		cv.Revealed = s.Engine.Phrase != nil && s.Engine.IsRevealed(c)
		if cv.Revealed {
			cv.Text = c.Display()
		}
	default:
		cv.Kind = "absent"
	}
	return cv
}
