package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/game"
	"github.com/bitblaster/ruotafortuna/internal/tui"
	"github.com/sirupsen/logrus"
)

const helpText = `Comandi:
  g | gira       gira la ruota
  c <lettera>    chiama una consonante
  v [vocale]     compra una vocale (senza lettera apre la scelta)
  x              annulla l'acquisto della vocale
  s | risolvi    risolvi (poi digita le lettere una alla volta, "annulla" per smettere)
  j / n          usa / non usare il Jolly
  a              round successivo
  r              ricomincia
  q              esci
Una lettera da sola vale come consonante, vocale o lettera della soluzione
a seconda del momento del turno. Durante l'Express usa "risolvi".`

// console is the line-oriented terminal front end of a session.
type console struct {
	s   *game.Session
	log logrus.FieldLogger

	mu  sync.Mutex // serializes writes to out
	out io.Writer
}

func newConsole(s *game.Session, out io.Writer, log logrus.FieldLogger) *console {
	c := &console{s: s, out: out, log: log}
	s.BroadcastFn = c.onEvent
	s.CueFn = c.onCue
	return c
}

// onEvent runs under the session lock, including from timers.
func (c *console) onEvent(ev game.GameEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev.Type == game.EventSyncState && ev.State != nil {
		fmt.Fprintln(c.out, "\n"+tui.Screen(*ev.State))
		return
	}
	if msg := tui.Message(ev); msg != "" {
		fmt.Fprintln(c.out, msg)
	}
}

func (c *console) onCue(cue engine.Cue) {
	c.log.WithField("cue", cue).Debug("cue")
	if cue == engine.CueBankrupt || cue == engine.CueError {
		c.mu.Lock()
		fmt.Fprint(c.out, "\a")
		c.mu.Unlock()
	}
}

func (c *console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

// loop reads commands until q, end of input or ctx is done.
func (c *console) loop(ctx context.Context, in io.Reader) error {
	c.println(helpText)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		quit, err := c.handle(sc.Text())
		if err != nil {
			c.println("⚠ " + describe(err))
		}
		if quit {
			return nil
		}
	}
	return sc.Err()
}

// handle runs one input line.
func (c *console) handle(line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	st := c.s.State()

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "q", "esci":
		return true, nil
	case "?", "h", "aiuto":
		c.println(helpText)
		return false, nil
	case "annulla":
		if st.Turn == engine.TurnVowelGuess {
			_, err = c.s.CancelVowelPurchase()
		} else {
			_, err = c.s.CancelSolving()
		}
		return false, err
	}

	// A bare letter is routed by turn phase. "a", "c", "g" ... are also
	// letters, so this runs before the command switch in the phases
	// where a letter is expected.
	if arg == "" && isLetter(cmd) {
		if handled, err := c.letter(st, cmd); handled {
			return false, err
		}
	}

	switch strings.ToLower(cmd) {
	case "g", "gira":
		_, err = c.s.Spin()
	case "c":
		_, err = c.s.GuessConsonant(arg)
	case "v":
		if arg == "" {
			_, err = c.s.BeginVowelPurchase()
		} else {
			_, err = c.s.BuyVowel(arg)
		}
	case "x":
		_, err = c.s.CancelVowelPurchase()
	case "s", "risolvi":
		_, err = c.s.StartSolving()
	case "j":
		_, err = c.s.UseJolly()
	case "n":
		_, err = c.s.DeclineJolly()
	case "a":
		_, err = c.s.NextRound()
	case "r":
		c.s.Reset()
		c.println("Partita annullata. Riavvia il programma per una nuova partita.")
		return true, nil
	default:
		c.println("Comando sconosciuto, ? per l'aiuto.")
	}
	return false, err
}

// letter handles a bare letter when the turn expects one.
func (c *console) letter(st engine.GameState, s string) (bool, error) {
	if st.Phase != engine.PhasePlaying {
		return false, nil
	}
	n := engine.NormalizeLetter(s)
	switch st.Turn {
	case engine.TurnConsonantGuess:
		_, err := c.s.GuessConsonant(s)
		return true, err
	case engine.TurnVowelGuess:
		_, err := c.s.BuyVowel(s)
		return true, err
	case engine.TurnSolvingInteractive:
		_, err := c.s.SolveLetter(s)
		return true, err
	case engine.TurnExpressGuess:
		if engine.IsVowel(n) {
			_, err := c.s.BuyVowel(s)
			return true, err
		}
		// "g", "s" and "c" keep their command meaning only when awaiting.
		_, err := c.s.GuessConsonant(s)
		return true, err
	}
	return false, nil
}

func isLetter(s string) bool {
	n := engine.NormalizeLetter(s)
	return n != 0 && len([]rune(s)) == 1 && (engine.IsVowel(n) || engine.IsConsonant(n))
}

func describe(err error) string {
	switch {
	case errors.Is(err, game.ErrNotConsonant):
		return "Serve una consonante."
	case errors.Is(err, game.ErrNotVowel):
		return "Serve una vocale."
	case errors.Is(err, game.ErrNotLetter):
		return "Serve una lettera."
	case errors.Is(err, game.ErrInsufficientScore):
		return "Servono almeno 500 punti nel round per comprare una vocale."
	case errors.Is(err, game.ErrNoVowelsLeft):
		return "Le vocali sono finite."
	case errors.Is(err, game.ErrLetterUsed):
		return "Lettera già chiamata."
	case errors.Is(err, game.ErrNoGame):
		return "Nessuna partita in corso."
	}
	return err.Error()
}
