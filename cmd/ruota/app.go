package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/config"
	"github.com/bitblaster/ruotafortuna/internal/game"
	"github.com/bitblaster/ruotafortuna/internal/history"
	"github.com/bitblaster/ruotafortuna/internal/phrases"
	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/bitblaster/ruotafortuna/internal/storage"
	"github.com/bitblaster/ruotafortuna/internal/storage/memory"
	"github.com/bitblaster/ruotafortuna/internal/storage/postgres"
	"github.com/bitblaster/ruotafortuna/internal/storage/sqlite"
	"github.com/bitblaster/ruotafortuna/internal/wheel"
	"github.com/sirupsen/logrus"
)

type options struct {
	envFile      string
	presetName   string
	players      string
	rounds       string
	hideCalled   bool
	savePreset   string
	deletePreset string
	listPresets  bool
	listResults  int
	forcePhrase  int
}

// app owns the long-lived collaborators of the terminal host.
type app struct {
	cfg     config.Config
	log     *logrus.Logger
	store   storage.Store
	history history.Recorder
	closers []func() error
	phrases []engine.Phrase
	wheels  wheel.Tables
}

func newApp(ctx context.Context, cfg config.Config, log *logrus.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, history: history.Nop{}}

	rules := a.rules()
	list, err := phrases.Load(cfg.PhrasesFile)
	if err != nil {
		return nil, err
	}
	a.phrases = list
	if a.wheels, err = wheel.LoadTables(cfg.WheelFile, rules); err != nil {
		return nil, err
	}

	if a.store, err = openStore(ctx, cfg); err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.store.Close)

	if cfg.RedisAddr != "" {
		rec, err := history.NewRedis(ctx, cfg.RedisAddr, cfg.RedisStream)
		if err != nil {
			log.WithError(err).Warn("action history disabled")
		} else {
			a.history = rec
			a.closers = append(a.closers, rec.Close)
		}
	}
	log.WithFields(logrus.Fields{
		"phrases": len(a.phrases),
		"store":   cfg.StoreDriver,
		"history": cfg.RedisAddr != "",
	}).Info("ready")
	return a, nil
}

func (a *app) rules() engine.HouseRules {
	rules := engine.DefaultHouseRules()
	rules.PenaltyDelay = a.cfg.PenaltyDelay
	return rules
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.WithError(err).Warn("close failed")
		}
	}
}

func (a *app) newSession() *game.Session {
	return game.NewSession(game.Config{
		Rules:       a.rules(),
		Seed:        a.cfg.Seed,
		Phrases:     a.phrases,
		Wheels:      a.wheels,
		Spinner:     wheel.NewRandomSpinner(a.cfg.Seed),
		UsedPhrases: a.store,
		Results:     a.store,
		History:     a.history,
		Logger:      a.log,
		TurnTimeout: a.cfg.TurnTimeout,
	})
}

// Run executes the one-shot commands or plays a game on in/out.
func (a *app) Run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	switch {
	case opts.listPresets:
		return a.printPresets(ctx, out)
	case opts.listResults > 0:
		return a.printResults(ctx, out, opts.listResults)
	case opts.deletePreset != "":
		if err := a.store.DeletePreset(ctx, opts.deletePreset); err != nil {
			return fmt.Errorf("delete preset: %w", err)
		}
		fmt.Fprintf(out, "Preset %q eliminato.\n", opts.deletePreset)
		return nil
	}

	p, err := a.resolvePreset(ctx, opts)
	if err != nil {
		return err
	}
	if opts.savePreset != "" {
		p.Name = opts.savePreset
		if err := p.Validate(a.rules()); err != nil {
			return err
		}
		if err := a.store.SavePreset(ctx, p.Normalized()); err != nil {
			return fmt.Errorf("save preset: %w", err)
		}
		fmt.Fprintf(out, "Preset %q salvato.\n", p.Name)
		return nil
	}

	var forced *int
	if opts.forcePhrase > 0 {
		forced = &opts.forcePhrase
	}
	s := a.newSession()
	defer s.Close()
	c := newConsole(s, out, a.log)
	if err := s.StartGame(ctx, p, forced); err != nil {
		return err
	}
	return c.loop(ctx, in)
}

func (a *app) resolvePreset(ctx context.Context, opts options) (preset.Preset, error) {
	if opts.presetName != "" {
		p, err := a.store.GetPreset(ctx, opts.presetName)
		if errors.Is(err, storage.ErrNotFound) {
			return preset.Preset{}, fmt.Errorf("preset %q not found", opts.presetName)
		}
		return p, err
	}
	rounds, err := parseRounds(opts.rounds)
	if err != nil {
		return preset.Preset{}, err
	}
	return preset.Preset{
		Name:              "riga di comando",
		PlayerNames:       splitList(opts.players),
		Rounds:            rounds,
		HideCalledLetters: opts.hideCalled,
	}, nil
}

func (a *app) printPresets(ctx context.Context, out io.Writer) error {
	list, err := a.store.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "Nessun preset salvato.")
	}
	for _, p := range list {
		fmt.Fprintf(out, "%s: %s, %d round\n", p.Name, strings.Join(p.PlayerNames, ", "), len(p.Rounds))
	}
	return nil
}

func (a *app) printResults(ctx context.Context, out io.Writer, limit int) error {
	results, err := a.store.ListResults(ctx, limit)
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "Nessuna partita conclusa.")
	}
	for _, r := range results {
		w, _ := r.Winner()
		fmt.Fprintf(out, "%s  vince %s con %d punti\n", r.FinishedAt.Local().Format("2006-01-02 15:04"), w.Name, w.TotalScore)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.PostgresDSN)
	default:
		return sqlite.Open(cfg.SQLitePath)
	}
}

// parseRounds reads "normal:any,express:Cinema". A missing category means any.
func parseRounds(s string) ([]engine.RoundConfig, error) {
	var out []engine.RoundConfig
	for _, item := range splitList(s) {
		typ, category, _ := strings.Cut(item, ":")
		rt := engine.RoundType(strings.ToLower(strings.TrimSpace(typ)))
		if rt != engine.RoundNormal && rt != engine.RoundExpress {
			return nil, fmt.Errorf("round %q: type must be normal or express", item)
		}
		category = strings.TrimSpace(category)
		if category == "" {
			category = engine.AnyCategory
		}
		out = append(out, engine.RoundConfig{Type: rt, Category: category})
	}
	if len(out) == 0 {
		return nil, errors.New("at least one round is required")
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
