package engine

import "testing"

func TestWinRoundKeepsRoundScore(t *testing.T) {
	g := newRound(t, "IL GATTO")
	g.Players[0].RoundScore = 1200
	g.Players[0].TotalScore = 300
	out := g.WinRound()
	if !out.RoundWon || !hasEvent(out, EventRoundWon) {
		t.Fatalf("WinRound: %+v", out)
	}
	if g.Players[0].TotalScore != 1500 || g.Players[0].RoundScore != 1200 {
		t.Errorf("total=%d round=%d, want 1500/1200", g.Players[0].TotalScore, g.Players[0].RoundScore)
	}
	for _, r := range "ILGATO" {
		if !g.Revealed.Has(r) {
			t.Errorf("%c not revealed after win", r)
		}
	}
	if len(g.Revealed) != 6 {
		t.Errorf("len(Revealed) = %d, want 6", len(g.Revealed))
	}
}

func TestIlGattoRound(t *testing.T) {
	g := newRound(t, "IL GATTO")
	spinAndGuess(t, &g, 300, 'T')
	spinAndGuess(t, &g, 500, 'L')
	spinAndGuess(t, &g, 100, 'G')
	if g.Players[0].RoundScore != 1200 {
		t.Fatalf("RoundScore = %d, want 1200", g.Players[0].RoundScore)
	}
	g.BuyVowel('I')
	g.BuyVowel('A')
	out := g.BuyVowel('O')
	if !out.RoundWon {
		t.Fatalf("not won; revealed %v", g.Revealed.Sorted())
	}
	if g.Players[0].TotalScore != -300 {
		t.Errorf("TotalScore = %d, want -300", g.Players[0].TotalScore)
	}
}

func TestStandingsAndWinner(t *testing.T) {
	g := NewGame(1, DefaultHouseRules())
	g.InitGame([]Player{
		{ID: 1, Name: "A", TotalScore: 500},
		{ID: 2, Name: "B", TotalScore: 900},
		{ID: 3, Name: "C", TotalScore: 900},
	}, nil, nil, false, nil)

	s := g.Standings()
	if s[0].Name != "B" || s[1].Name != "C" || s[2].Name != "A" {
		t.Errorf("Standings = %v %v %v, want B C A", s[0].Name, s[1].Name, s[2].Name)
	}
	w, ok := g.Winner()
	if !ok || w.Name != "B" {
		t.Errorf("Winner = %v/%v, want B", w.Name, ok)
	}
	if g.Players[0].Name != "A" {
		t.Error("Standings reordered Players")
	}
}
