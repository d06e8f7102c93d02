package ui

import (
	"image/color"
	"strings"

	"atc-radar/internal/hud"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TextInput is the callsign prompt shown before a game starts.
type TextInput struct {
	Label    string
	Text     string
	IsActive bool
	X, Y     int
	Width    int
	Height   int
	OnSubmit func(string)
}

func NewTextInput(label string, x, y, width, height int, onSubmit func(string)) *TextInput {
	return &TextInput{
		Label:    label,
		IsActive: true,
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		OnSubmit: onSubmit,
	}
}

func (ti *TextInput) Update() {
	if !ti.IsActive {
		return
	}

	ti.Text = hud.AppendCallsign(ti.Text, ebiten.AppendInputChars(nil))

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		ti.Text = hud.TrimLastRune(ti.Text)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		if ti.OnSubmit != nil {
			ti.OnSubmit(strings.TrimSpace(ti.Text))
		}
	}
}

func (ti *TextInput) Draw(screen *ebiten.Image) {
	bgColor := color.RGBA{0, 30, 0, 255}
	if ti.IsActive {
		bgColor = color.RGBA{0, 60, 0, 255}
	}
	x, y, w, h := float32(ti.X), float32(ti.Y), float32(ti.Width), float32(ti.Height)
	vector.DrawFilledRect(screen, x, y, w, h, bgColor, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{0, 255, 0, 255}, false)

	if ti.Label != "" {
		ebitenutil.DebugPrintAt(screen, ti.Label, ti.X, ti.Y-18)
	}

	displayTxt := ti.Text
	if ti.IsActive {
		displayTxt += "_"
	}
	ebitenutil.DebugPrintAt(screen, displayTxt, ti.X+5, ti.Y+(ti.Height-16)/2)
}

// IsClicked checks if the mouse click is within the text input bounds
func (ti *TextInput) IsClicked(mouseX, mouseY int) bool {
	return mouseX >= ti.X && mouseX <= ti.X+ti.Width &&
		mouseY >= ti.Y && mouseY <= ti.Y+ti.Height
}

func (ti *TextInput) Reset() {
	ti.Text = ""
	ti.IsActive = true
}
