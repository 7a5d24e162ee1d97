// Command ruota runs a game of La Ruota della Fortuna in the terminal.
package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitblaster/ruotafortuna/internal/config"
	"github.com/bitblaster/ruotafortuna/internal/logging"
)

func main() {
	var opts options
	flag.StringVar(&opts.envFile, "env", ".env", "dotenv file to load before reading the environment")
	flag.StringVar(&opts.presetName, "preset", "", "start from a saved preset")
	flag.StringVar(&opts.players, "players", "Giocatore 1,Giocatore 2", "comma-separated player names")
	flag.StringVar(&opts.rounds, "rounds", "normal:any,normal:any,express:any", "comma-separated rounds as type:category")
	flag.BoolVar(&opts.hideCalled, "hide", false, "hide called letters on the letter panel")
	flag.StringVar(&opts.savePreset, "save-preset", "", "save the setup from -players/-rounds/-hide under this name and exit")
	flag.StringVar(&opts.deletePreset, "delete-preset", "", "delete a saved preset and exit")
	flag.BoolVar(&opts.listPresets, "presets", false, "list saved presets and exit")
	flag.IntVar(&opts.listResults, "results", 0, "show the last N finished games and exit")
	flag.IntVar(&opts.forcePhrase, "phrase", 0, "debug: play the phrase with this id in the first round")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		if cfg.Seed, err = newSeed(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx, opts, os.Stdin, os.Stdout)
}

// newSeed draws a random seed from crypto/rand.
func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]) | 1, nil
}
