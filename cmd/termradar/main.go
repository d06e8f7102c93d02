// termradar runs the radar scope in a terminal. The pointer is a cursor
// moved with the arrow keys; aircraft steer away from it like they do from
// the mouse in the window client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"atc-radar/internal/config"
	"atc-radar/internal/game/aircraft"
	"atc-radar/internal/game/conflict"
	"atc-radar/internal/hud"
	"atc-radar/internal/logging"
	"atc-radar/internal/players"
	"atc-radar/internal/scene"
	"atc-radar/internal/scoreboard"
	"atc-radar/pkg/rand"
	"atc-radar/pkg/types"

	"github.com/gdamore/tcell/v2"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const (
	TICK_RATE_HZ     = 60
	RENDER_EVERY     = 4
	HUD_ROWS         = 3
	PREDICTION_TICKS = 180
)

var (
	styleDefault   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleScope     = styleDefault.Foreground(tcell.ColorGreen)
	styleRing      = styleDefault.Foreground(tcell.ColorDarkGreen)
	styleRunway    = styleDefault.Foreground(tcell.ColorSilver)
	styleThreshold = styleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleConflict  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed).Bold(true)
	stylePredicted = styleDefault.Foreground(tcell.ColorHotPink).Bold(true)
	stylePointer   = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHUD       = styleDefault.Foreground(tcell.ColorLime)
	styleOverlay   = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleUrgent    = styleDefault.Foreground(tcell.ColorYellow)
)

var errQuit = errors.New("quit")

type radar struct {
	screen tcell.Screen
	scene  *scene.Scene
	clock  *scene.TickClock
	scores *scoreboard.Scoreboard
	roster *players.Manager

	playerID    string
	callsign    string
	cursor      types.Vec2
	pointerOn   bool
	resultSaved bool
}

func newRadar(s tcell.Screen, cfg config.Config, callsign string) (*radar, error) {
	bounds, err := types.NewBounds(float64(cfg.Window.Width), float64(cfg.Window.Height))
	if err != nil {
		return nil, err
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	clock := scene.NewTickClock(1000.0 / TICK_RATE_HZ)
	sc, err := scene.New(scene.Options{
		Bounds:  bounds,
		Airport: cfg.Airport(),
		Traffic: cfg.TrafficOptions(),
		Game:    cfg.GameState(),
	}, clock, rand.New(seed))
	if err != nil {
		return nil, err
	}

	var storage scoreboard.Storage
	if cfg.Scoreboard.Path != "" {
		storage = scoreboard.NewFileStorage(cfg.Scoreboard.Path)
	}

	return &radar{
		screen: s,
		scene:  sc,
		clock:  clock,
		scores: scoreboard.New(scoreboard.Options{
			TopLimit:        cfg.Scoreboard.TopLimit,
			RequireCallsign: *cfg.Scoreboard.RequireCallsign,
			Storage:         storage,
		}),
		roster:   players.NewManager(cfg.Players.MaxPlayers),
		playerID: players.NewPlayerID(),
		callsign: hud.AppendCallsign("", []rune(callsign)),
		cursor:   bounds.Center(),
	}, nil
}

// run drives the scope until the user quits or ctx is cancelled. Input is
// read on its own goroutine and handed over on a channel, so the scene is
// only ever touched here.
func (r *radar) run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 16)

	eg.Go(func() error {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	eg.Go(func() error {
		defer r.screen.Fini()

		ticker := time.NewTicker(time.Second / TICK_RATE_HZ)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-events:
				if err := r.handleEvent(ev); err != nil {
					return err
				}
			case <-ticker.C:
				r.clock.Advance()
				r.scene.Tick()
				if r.scene.Phase() == scene.GAME_OVER {
					r.recordResult()
				}
				if frame%RENDER_EVERY == 0 {
					r.render()
				}
			}
		}
	})

	err := eg.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *radar) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.screen.Sync()
	case *tcell.EventKey:
		step := r.cellSize()
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return errQuit
		case tcell.KeyUp:
			r.cursor.Y -= step.Y
		case tcell.KeyDown:
			r.cursor.Y += step.Y
		case tcell.KeyLeft:
			r.cursor.X -= step.X
		case tcell.KeyRight:
			r.cursor.X += step.X
		case tcell.KeyEnter:
			r.advance()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return errQuit
			case ' ':
				r.pointerOn = !r.pointerOn
			case 'r':
				if ap := r.scene.Airspace.Airport; ap != nil {
					r.scene.SetWind(ap.WindDeg + 180)
				}
			}
		}
		b := r.scene.Airspace.Bounds
		r.cursor.X = types.Clamp(r.cursor.X, 0, b.Width)
		r.cursor.Y = types.Clamp(r.cursor.Y, 0, b.Height)
		if r.pointerOn {
			r.scene.SetPointer(&r.cursor)
		} else {
			r.scene.SetPointer(nil)
		}
	}
	return nil
}

// advance is bound to Enter: start a game, move past a stage summary, or
// leave the game over screen.
func (r *radar) advance() {
	switch r.scene.Phase() {
	case scene.ATTRACT:
		if _, ok, err := r.roster.Join(r.playerID, r.callsign, map[string]string{"client": "terminal"}); err != nil || !ok {
			log.Warnf("players: %s could not join", r.callsign)
			return
		}
		r.resultSaved = false
		r.scene.Start()
	case scene.STAGE_COMPLETE:
		r.scene.ContinueStage()
	case scene.GAME_OVER:
		r.roster.Leave(r.playerID)
		r.scene.ReturnToAttract()
	}
}

func (r *radar) recordResult() {
	if r.resultSaved {
		return
	}
	r.resultSaved = true
	if _, err := r.scores.RecordResult(scoreboard.Result{
		Callsign:   r.callsign,
		Score:      float64(r.scene.State.Score()),
		DurationMs: r.scene.Duration(),
	}); err != nil {
		log.Warnf("scoreboard: %v", err)
	}
}

// cellSize is the extent of one terminal cell in scope units.
func (r *radar) cellSize() types.Vec2 {
	cols, rows := r.scopeSize()
	b := r.scene.Airspace.Bounds
	return types.NewVec2(b.Width/float64(cols), b.Height/float64(rows))
}

func (r *radar) scopeSize() (int, int) {
	w, h := r.screen.Size()
	return max(w, 1), max(h-HUD_ROWS, 1)
}

func (r *radar) toCell(p types.Vec2) (int, int, bool) {
	cols, rows := r.scopeSize()
	b := r.scene.Airspace.Bounds
	x := int(math.Floor(p.X / b.Width * float64(cols)))
	y := int(math.Floor(p.Y / b.Height * float64(rows)))
	return x, y, x >= 0 && x < cols && y >= 0 && y < rows
}

func (r *radar) render() {
	s := r.screen
	s.Clear()

	r.drawRings()
	r.drawRunway()

	acs := r.scene.Aircraft()
	for _, p := range conflict.PredictAll(acs, PREDICTION_TICKS) {
		for _, ac := range []*aircraft.Aircraft{p.A, p.B} {
			if x, y, ok := r.toCell(ac.Position); ok {
				s.SetContent(x, y, '!', nil, stylePredicted)
			}
		}
	}
	for _, ac := range acs {
		x, y, ok := r.toCell(ac.Position)
		if !ok {
			continue
		}
		style := styleScope
		if ac.IsColliding {
			style = styleConflict
		}
		s.SetContent(x, y, blip(ac), nil, style)
		tag := hud.DataTag(ac)
		drawText(s, x+2, y, fmt.Sprintf("%s %s", tag[0], tag[3]), styleScope)
	}

	if r.pointerOn {
		if x, y, ok := r.toCell(r.cursor); ok {
			s.SetContent(x, y, '+', nil, stylePointer)
		}
	}

	r.drawHUD()
	s.Show()
}

// blip picks an arrow for the aircraft's compass heading.
func blip(ac *aircraft.Aircraft) rune {
	if ac.TouchedDown {
		return 'o'
	}
	arrows := []rune{'^', '/', '>', '\\', 'v', '/', '<', '\\'}
	return arrows[int(math.Round(ac.Heading()/45))%len(arrows)]
}

func (r *radar) drawRings() {
	centre := r.scene.Airspace.Bounds.Center()
	for _, radius := range r.scene.Airspace.RangeRings() {
		steps := int(radius / 4)
		for i := range steps {
			a := 2 * math.Pi * float64(i) / float64(steps)
			p := types.NewVec2(centre.X+radius*math.Cos(a), centre.Y+radius*math.Sin(a))
			if x, y, ok := r.toCell(p); ok {
				r.screen.SetContent(x, y, '.', nil, styleRing)
			}
		}
	}
}

func (r *radar) drawRunway() {
	rwy := r.scene.Runway()
	if rwy == nil {
		return
	}
	x0, y, _ := r.toCell(types.NewVec2(rwy.CenterX-rwy.HalfLength, rwy.CenterY))
	x1, _, _ := r.toCell(types.NewVec2(rwy.CenterX+rwy.HalfLength, rwy.CenterY))
	for x := x0; x <= x1; x++ {
		r.screen.SetContent(x, y, '=', nil, styleRunway)
	}
	tx, _, _ := r.toCell(rwy.Threshold(r.scene.Traffic.ActiveDirection()))
	r.screen.SetContent(tx, y, '|', nil, styleThreshold)
}

func (r *radar) drawHUD() {
	w, h := r.screen.Size()
	top := h - HUD_ROWS

	status := hud.StatusLines(hud.StatusFromScene(r.scene))
	drawText(r.screen, 0, top, strings.Join(status, "  "), styleHUD)

	if radio := r.scene.Traffic.RecentRadio(1); len(radio) > 0 {
		style := styleHUD
		if radio[0].IsUrgent {
			style = styleUrgent
		}
		drawText(r.screen, 0, top+1, fmt.Sprintf("%s: %s", radio[0].Callsign, radio[0].Message), style)
	}
	drawText(r.screen, 0, top+2, "arrows move  space pointer  r wind  enter start/continue  q quit", styleDefault)

	var lines []string
	switch r.scene.Phase() {
	case scene.ATTRACT:
		lines = append([]string{fmt.Sprintf("Press ENTER to start as %s", r.callsign)}, hud.LeaderboardLines(r.scores.TopScores())...)
	case scene.STAGE_COMPLETE:
		lines = hud.StageCompleteLines(r.scene.State.Stage(), r.scene.StageScore(), r.scene.State.Score())
	case scene.GAME_OVER:
		lines = append(hud.GameOverLines(r.scene.State.Score(), r.scene.State.Stage()), hud.LeaderboardLines(r.scores.TopScores())...)
	}
	for i, line := range lines {
		drawText(r.screen, max(w/2-len(line)/2, 0), h/4+i, line, styleOverlay)
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	callsign := flag.String("callsign", "TERM", "callsign to play under")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}
	closer := logging.SetupFileOnly(cfg.Log.Level, cfg.Log.File)
	defer closer.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	s.SetStyle(styleDefault)

	r, err := newRadar(s, cfg, *callsign)
	if err != nil {
		s.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := r.run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
