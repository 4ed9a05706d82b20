package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/eyelaser/audio"
	"github.com/lixenwraith/eyelaser/config"
	"github.com/lixenwraith/eyelaser/constants"
	"github.com/lixenwraith/eyelaser/engine"
	"github.com/lixenwraith/eyelaser/feed"
	"github.com/lixenwraith/eyelaser/network"
	"github.com/lixenwraith/eyelaser/pose"
	"github.com/lixenwraith/eyelaser/render"
	"github.com/lixenwraith/eyelaser/render/renderers"
	"github.com/lixenwraith/eyelaser/service"
	"github.com/lixenwraith/eyelaser/systems"
)

// app wires the frame loop, renderers and background services around one screen
type app struct {
	cfg          config.Config
	screen       tcell.Screen
	slot         *pose.Slot
	game         *engine.GameContext
	orchestrator *render.RenderOrchestrator
	hub          *service.Hub
	sound        *audio.SoundManager
	puppet       *feed.Puppet // nil unless the puppet is the pose source
	server       *network.Server
}

// screenField maps the terminal grid to field units
func screenField(screen tcell.Screen, cellWidth, cellHeight float64) engine.FieldFunc {
	return func() engine.Field {
		cols, rows := screen.Size()
		return engine.Field{
			Width:  float64(cols) * cellWidth,
			Height: float64(rows) * cellHeight,
		}
	}
}

// newApp builds every component; nothing runs until the hub is started
func newApp(cfg config.Config, screen tcell.Screen, recordPath string) (*app, error) {
	a := &app{
		cfg:    cfg,
		screen: screen,
		slot:   pose.NewSlot(),
		hub:    service.NewHub(),
	}
	field := screenField(screen, cfg.Display.CellWidth, cfg.Display.CellHeight)

	a.game = engine.NewGameContext(cfg.Game, field, a.slot)
	for _, s := range []engine.System{
		systems.NewSpawnSystem(),
		systems.NewMovementSystem(),
		systems.NewPoseSystem(),
		systems.NewBeamSystem(),
		systems.NewHazardSystem(),
		systems.NewCullSystem(),
		systems.NewAudioSystem(),
	} {
		a.game.AddSystem(s)
	}

	a.orchestrator = render.NewRenderOrchestrator(screen, cfg.Display.CellWidth, cfg.Display.CellHeight)
	renderers.RegisterAll(a.orchestrator, cfg.Game.Scoring)

	a.sound = audio.NewSoundManager(cfg.Audio)
	a.game.Audio = a.sound

	services := []service.Service{a.sound}
	switch cfg.Feed.Source {
	case config.SourceWebsocket:
		a.server = network.NewServer(cfg.Feed.Listen, a.slot, a.game.Scoreboard)
		services = append(services, a.server)
	case config.SourceReplay:
		services = append(services, feed.NewReplaySource(cfg.Feed.ReplayPath, cfg.Feed.ReplayInterval, cfg.Feed.ReplayLoop, a.slot))
	default:
		a.puppet = feed.NewPuppet(a.slot, field, cfg.Feed.PuppetInterval)
		services = append(services, a.puppet)
	}
	if recordPath != "" {
		services = append(services, feed.NewRecorder(recordPath, constants.DetectionInterval, a.slot))
	}

	for _, svc := range services {
		if err := a.hub.Register(svc); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// frame runs one simulation tick and draws it
func (a *app) frame() {
	a.game.Tick()
	a.orchestrator.RenderFrame(render.RenderContext{State: a.game.State})
}

// handleEvent applies one terminal event and reports whether the game should keep running
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.orchestrator.Resize(cols, rows)
		log.Printf("resize to %dx%d cells", cols, rows)
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
		if a.puppet != nil {
			a.puppet.HandleKey(ev)
		}
	}
	return true
}

// run drives the frame ticker until a quit key or the screen closes
func (a *app) run() {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go func() {
		defer recoverCrash(a.screen, "EVENT POLLER")
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(quit)
				return
			}
			events <- ev
		}
	}()

	interval := a.cfg.Display.FrameInterval
	if interval <= 0 {
		interval = constants.FrameUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return
			}
		case <-quit:
			return
		case <-ticker.C:
			a.frame()
		}
	}
}
