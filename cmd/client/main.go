package main

import (
	"atc-radar/internal/config"
	"atc-radar/internal/game/aircraft"
	"atc-radar/internal/game/conflict"
	"atc-radar/internal/hud"
	"atc-radar/internal/logging"
	"atc-radar/internal/players"
	"atc-radar/internal/scene"
	"atc-radar/internal/scoreboard"
	"atc-radar/internal/ui"
	"atc-radar/pkg/rand"
	"atc-radar/pkg/types"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/goforj/godump"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"
)

const (
	PREDICTION_TICKS = 180
	TAG_OFFSET       = 10
	RADIO_LINES      = 4
)

var (
	scopeGreen    = color.RGBA{0, 255, 0, 255}
	ringGreen     = color.RGBA{0, 90, 0, 255}
	runwayGrey    = color.RGBA{90, 90, 90, 255}
	thresholdCol  = color.RGBA{255, 255, 255, 255}
	conflictRed   = color.RGBA{255, 0, 0, 120}
	predictYellow = color.RGBA{255, 200, 0, 200}
	vectorBlue    = color.RGBA{100, 100, 255, 255}
	pointerCol    = color.RGBA{0, 255, 0, 60}
	overlayCol    = color.RGBA{0, 0, 0, 190}
)

type Camera struct {
	X, Y                 float64
	PanStartX, PanStartY int
	Scale                float64
}

type Game struct {
	width, height int
	camera        *Camera
	scene         *scene.Scene
	scores        *scoreboard.Scoreboard
	roster        *players.Manager

	playerID      string
	callsign      string
	callsignInput *ui.TextInput
	formError     string
	resultSaved   bool
	debug         bool
}

func NewGame(cfg config.Config) (*Game, error) {
	bounds, err := types.NewBounds(float64(cfg.Window.Width), float64(cfg.Window.Height))
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if cfg.Game.Seed != 0 {
		rng = rand.New(cfg.Game.Seed)
	} else {
		rng = rand.NewTimeSeeded()
	}

	sc, err := scene.New(scene.Options{
		Bounds:  bounds,
		Airport: cfg.Airport(),
		Traffic: cfg.TrafficOptions(),
		Game:    cfg.GameState(),
	}, scene.NewMonotonicClock(), rng)
	if err != nil {
		return nil, err
	}

	var storage scoreboard.Storage
	if cfg.Scoreboard.Path != "" {
		storage = scoreboard.NewFileStorage(cfg.Scoreboard.Path)
	}

	game := &Game{
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		camera: &Camera{0, 0, 0, 0, 1.0},
		scene:  sc,
		scores: scoreboard.New(scoreboard.Options{
			TopLimit:        cfg.Scoreboard.TopLimit,
			RequireCallsign: *cfg.Scoreboard.RequireCallsign,
			Storage:         storage,
		}),
		roster:   players.NewManager(cfg.Players.MaxPlayers),
		playerID: players.NewPlayerID(),
	}
	game.callsignInput = ui.NewTextInput("Callsign:", cfg.Window.Width/2-100, cfg.Window.Height/2, 200, 30, game.submitCallsign)
	return game, nil
}

func (g *Game) submitCallsign(callsign string) {
	if n := len([]rune(callsign)); n < scoreboard.MIN_CALLSIGN_LEN || n > scoreboard.MAX_CALLSIGN_LEN {
		g.formError = fmt.Sprintf("Callsign must be %d-%d characters", scoreboard.MIN_CALLSIGN_LEN, scoreboard.MAX_CALLSIGN_LEN)
		return
	}
	if _, ok, err := g.roster.Join(g.playerID, callsign, map[string]string{"client": "window"}); err != nil || !ok {
		g.formError = "No free player slot"
		return
	}

	g.formError = ""
	g.callsign = callsign
	g.callsignInput.IsActive = false
	g.resultSaved = false
	g.scene.Start()
	log.Printf("GAME: %s cleared for stage 1", callsign)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.handleInput()

	switch g.scene.Phase() {
	case scene.ATTRACT:
		g.callsignInput.Update()
	case scene.STAGE_COMPLETE:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.scene.ContinueStage()
		}
	case scene.GAME_OVER:
		g.recordResult()
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.roster.Leave(g.playerID)
			g.scene.ReturnToAttract()
			g.callsignInput.Reset()
		}
	}

	g.scene.Tick()
	return nil
}

func (g *Game) recordResult() {
	if g.resultSaved {
		return
	}
	g.resultSaved = true
	_, err := g.scores.RecordResult(scoreboard.Result{
		Callsign:   g.callsign,
		Score:      float64(g.scene.State.Score()),
		DurationMs: g.scene.Duration(),
	})
	if err != nil {
		log.Warnf("scoreboard: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	g.drawAirspace(screen)

	acs := g.scene.Aircraft()
	g.drawPredictions(screen, acs)
	for _, ac := range acs {
		g.drawAircraft(screen, ac)
	}
	g.drawPointer(screen)

	g.drawUI(screen)
	ebitenutil.DebugPrintAt(screen, "FPS: "+strconv.FormatFloat(ebiten.ActualFPS(), 'f', 2, 64), g.width-100, 5)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		if b, err := types.NewBounds(float64(outsideWidth), float64(outsideHeight)); err == nil {
			g.width, g.height = outsideWidth, outsideHeight
			g.scene.Resize(b)
			g.callsignInput.X = outsideWidth/2 - g.callsignInput.Width/2
			g.callsignInput.Y = outsideHeight / 2
		}
	}
	return g.width, g.height
}

func (g *Game) handleInput() {
	cx, cy := ebiten.CursorPosition()
	if cx >= 0 && cy >= 0 && cx < g.width && cy < g.height {
		wx, wy := g.screenToWorld(float64(cx), float64(cy))
		g.scene.SetPointer(&types.Vec2{X: wx, Y: wy})
	} else {
		g.scene.SetPointer(nil)
	}

	if g.scene.Phase() == scene.ATTRACT && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.callsignInput.IsActive = g.callsignInput.IsClicked(cx, cy)
	}

	// Swing the wind round to the other runway end. R is free to type
	// while the callsign prompt is up.
	if g.scene.Phase() != scene.ATTRACT && inpututil.IsKeyJustPressed(ebiten.KeyR) && g.scene.Airspace.Airport != nil {
		g.scene.SetWind(g.scene.Airspace.Airport.WindDeg + 180)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		if g.debug {
			log.Debugf("traffic:\n%s", godump.DumpStr(g.scene.Aircraft()))
			log.Debugf("game:\n%s", godump.DumpStr(g.scene.State.Snapshot()))
		}
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		worldX, worldY := g.screenToWorld(float64(cx), float64(cy))

		scale := g.camera.Scale
		if wy > 0 {
			scale *= 1.1
		} else {
			scale /= 1.1
		}
		g.camera.Scale = types.Clamp(scale, 0.5, 3.0)

		newWorldX, newWorldY := g.screenToWorld(float64(cx), float64(cy))
		g.camera.X -= (newWorldX - worldX)
		g.camera.Y -= (newWorldY - worldY)
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.camera.PanStartX, g.camera.PanStartY = cx, cy
		} else {
			g.camera.X -= float64(cx-g.camera.PanStartX) / g.camera.Scale
			g.camera.Y -= float64(cy-g.camera.PanStartY) / g.camera.Scale
			g.camera.PanStartX, g.camera.PanStartY = cx, cy
		}
	}
}

func (g *Game) screenToWorld(sx, sy float64) (wx, wy float64) {
	wx = sx/g.camera.Scale + g.camera.X
	wy = sy/g.camera.Scale + g.camera.Y
	return
}

func (g *Game) worldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx - g.camera.X) * g.camera.Scale
	sy = (wy - g.camera.Y) * g.camera.Scale
	return
}

func (g *Game) drawAirspace(screen *ebiten.Image) {
	centre := g.scene.Airspace.Bounds.Center()
	cx, cy := g.worldToScreen(centre.X, centre.Y)
	for _, r := range g.scene.Airspace.RangeRings() {
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r*g.camera.Scale), 1, ringGreen, true)
	}

	rwy := g.scene.Runway()
	if rwy == nil {
		return
	}
	x0, y0 := g.worldToScreen(rwy.CenterX-rwy.HalfLength, rwy.CenterY-rwy.HalfWidth)
	x1, y1 := g.worldToScreen(rwy.CenterX+rwy.HalfLength, rwy.CenterY+rwy.HalfWidth)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), runwayGrey, false)

	dir := g.scene.Traffic.ActiveDirection()
	tx, _ := g.worldToScreen(rwy.ThresholdX(dir), 0)
	vector.StrokeLine(screen, float32(tx), float32(y0), float32(tx), float32(y1), 2, thresholdCol, false)

	ebitenutil.DebugPrintAt(screen, string(types.Runway09), int(x0)-20, int(y0))
	ebitenutil.DebugPrintAt(screen, string(types.Runway27), int(x1)+6, int(y0))
}

func (g *Game) drawAircraft(screen *ebiten.Image, ac *aircraft.Aircraft) {
	sx, sy := g.worldToScreen(ac.Position.X, ac.Position.Y)
	scale := float32(g.camera.Scale)

	if ac.IsColliding {
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(ac.CollisionRadius)*2*scale, conflictRed, true)
	}
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(ac.CollisionRadius)*scale, 1, scopeGreen, true)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), 2*scale, scopeGreen, true)

	if !ac.TouchedDown {
		// One second of travel at 60 ticks per second.
		ahead := ac.Speed * 60
		ex, ey := g.worldToScreen(
			ac.Position.X+math.Cos(ac.Direction)*ahead,
			ac.Position.Y+math.Sin(ac.Direction)*ahead,
		)
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 1, vectorBlue, true)
	}

	ebitenutil.DebugPrintAt(screen, strings.Join(hud.DataTag(ac), "\n"), int(sx)+TAG_OFFSET, int(sy)-20)
}

func (g *Game) drawPredictions(screen *ebiten.Image, acs []*aircraft.Aircraft) {
	for _, p := range conflict.PredictAll(acs, PREDICTION_TICKS) {
		ax, ay := g.worldToScreen(p.A.Position.X, p.A.Position.Y)
		bx, by := g.worldToScreen(p.B.Position.X, p.B.Position.Y)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, predictYellow, true)
	}
}

func (g *Game) drawPointer(screen *ebiten.Image) {
	p := g.scene.Pointer()
	if p == nil {
		return
	}
	sx, sy := g.worldToScreen(p.X, p.Y)
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(aircraft.AVOIDANCE_RADIUS*g.camera.Scale), 1, pointerCol, true)
}

func (g *Game) drawUI(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, strings.Join(hud.StatusLines(hud.StatusFromScene(g.scene)), "\n"), 10, 10)

	radio := g.scene.Traffic.RecentRadio(RADIO_LINES)
	for i, msg := range radio {
		line := fmt.Sprintf("%s  %s: %s", hud.FormatElapsed(msg.Timestamp), msg.Callsign, msg.Message)
		if msg.IsUrgent {
			line = "! " + line
		}
		ebitenutil.DebugPrintAt(screen, line, 10, g.height-20*(len(radio)-i)-5)
	}

	switch g.scene.Phase() {
	case scene.ATTRACT:
		g.drawOverlay(screen, append([]string{"ATC RADAR", "Enter your callsign and press ENTER", ""},
			hud.LeaderboardLines(g.scores.TopScores())...), g.height/4)
		g.callsignInput.Draw(screen)
		if g.formError != "" {
			ebitenutil.DebugPrintAt(screen, g.formError, g.callsignInput.X, g.callsignInput.Y+g.callsignInput.Height+6)
		}
	case scene.STAGE_COMPLETE:
		g.drawOverlay(screen, hud.StageCompleteLines(g.scene.State.Stage(), g.scene.StageScore(), g.scene.State.Score()), g.height/3)
	case scene.GAME_OVER:
		lines := hud.GameOverLines(g.scene.State.Score(), g.scene.State.Stage())
		lines = append(lines, "")
		lines = append(lines, hud.LeaderboardLines(g.scores.TopScores())...)
		g.drawOverlay(screen, lines, g.height/4)
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image, lines []string, top int) {
	w, h := 320, 16*len(lines)+20
	x := g.width/2 - w/2
	vector.DrawFilledRect(screen, float32(x), float32(top), float32(w), float32(h), overlayCol, false)
	vector.StrokeRect(screen, float32(x), float32(top), float32(w), float32(h), 1, scopeGreen, false)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), x+10, top+10)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	closer := logging.Setup(cfg.Log.Level, cfg.Log.File)
	defer closer.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("ATC Radar")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
