package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"

	"github.com/lixenwraith/eyelaser/config"
)

var (
	configPath = flag.String("config", "", "Path to a TOML config file")
	sourceFlag = flag.String("source", "", "Pose source: puppet, websocket or replay (overrides config)")
	listenFlag = flag.String("listen", "", "WebSocket listen address (overrides config)")
	replayFlag = flag.String("replay", "", "JSON-lines pose file to replay; implies -source replay")
	recordFlag = flag.String("record", "", "Record every pose snapshot to a JSON-lines file")
	debugFlag  = flag.Bool("debug", false, "Write a debug log to logs/eyelaser.log")
	seedFlag   = flag.Uint64("seed", 0, "Random seed for reproducible runs, 0 seeds from the clock")
	noScore    = flag.Bool("noscore", false, "Play without scoring or the score overlay")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configPath, applyFlags)
	if err != nil {
		fail(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fail(errors.Wrap(err, "create screen"))
	}
	if err := screen.Init(); err != nil {
		fail(errors.Wrap(err, "init screen"))
	}
	defer screen.Fini()
	defer recoverCrash(screen, "EYELASER")
	screen.HideCursor()

	a, err := newApp(cfg, screen, *recordFlag)
	if err != nil {
		screen.Fini()
		fail(err)
	}
	if err := a.hub.StartAll(); err != nil {
		screen.Fini()
		fail(err)
	}
	defer a.hub.StopAll()

	log.Printf("source=%s scoring=%v seed=%d", cfg.Feed.Source, cfg.Game.Scoring, cfg.Game.Seed)
	a.run()

	board := a.game.Scoreboard()
	log.Printf("session over: score=%.0f high=%.0f frames=%d", board.Score, board.HighScore, board.Frame)
}

// applyFlags layers command-line overrides over the loaded config
func applyFlags(cfg *config.Config) {
	if *sourceFlag != "" {
		cfg.Feed.Source = *sourceFlag
	}
	if *listenFlag != "" {
		cfg.Feed.Listen = *listenFlag
	}
	if *replayFlag != "" {
		cfg.Feed.ReplayPath = *replayFlag
		cfg.Feed.Source = config.SourceReplay
	}
	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}
	if *noScore {
		cfg.Game.Scoring = false
	}
}

// fail reports a startup error on the plain terminal and exits
func fail(err error) {
	log.Printf("fatal: %+v", err)
	fmt.Fprint(os.Stderr, chalk.Red, "eyelaser: ", err, chalk.Reset, "\n")
	os.Exit(1)
}

// recoverCrash restores the terminal before printing a panic, so the trace stays readable
func recoverCrash(screen tcell.Screen, who string) {
	r := recover()
	if r == nil {
		return
	}
	screen.Fini()
	log.Printf("%s crashed: %v\n%s", who, r, debug.Stack())
	fmt.Fprint(os.Stderr, "\r\n", chalk.Red, who, " CRASHED: ", r, chalk.Reset, "\r\n")
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
