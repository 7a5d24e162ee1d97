package engine

import "testing"

func TestNormalizeRune(t *testing.T) {
	tests := []struct {
		in   rune
		want rune
	}{
		{'a', 'A'},
		{'à', 'A'},
		{'È', 'E'},
		{'é', 'E'},
		{'ì', 'I'},
		{'ò', 'O'},
		{'ù', 'U'},
		{'z', 'Z'},
		{'\'', '\''},
	}
	for _, tt := range tests {
		if got := NormalizeRune(tt.in); got != tt.want {
			t.Errorf("NormalizeRune(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLetter(t *testing.T) {
	if got := NormalizeLetter(""); got != 0 {
		t.Errorf("NormalizeLetter(\"\") = %q, want 0", got)
	}
	if got := NormalizeLetter("ètna"); got != 'E' {
		t.Errorf("NormalizeLetter(\"ètna\") = %q, want E", got)
	}
}

func TestPhraseLetters(t *testing.T) {
	set := PhraseLetters("DELL'AMORE, SÌ!")
	for _, r := range "DELAMORSI" {
		if _, ok := set[r]; !ok {
			t.Errorf("missing %c", r)
		}
	}
	if len(set) != 9 {
		t.Errorf("len = %d, want 9", len(set))
	}
}

func TestCountLetter(t *testing.T) {
	if got := CountLetter("CITTÀ DI CASTELLO", 'A'); got != 2 {
		t.Errorf("CountLetter(A) = %d, want 2", got)
	}
	if got := CountLetter("CITTÀ DI CASTELLO", 'T'); got != 3 {
		t.Errorf("CountLetter(T) = %d, want 3", got)
	}
}

func TestVowelConsonant(t *testing.T) {
	if !IsVowel('E') || IsVowel('B') {
		t.Error("IsVowel wrong")
	}
	if !IsConsonant('B') || IsConsonant('A') || IsConsonant('\'') {
		t.Error("IsConsonant wrong")
	}
}
