package hud

import (
	"slices"
	"strings"
	"testing"

	"atc-radar/internal/game/aircraft"
	"atc-radar/internal/scoreboard"
	"atc-radar/pkg/types"
)

func TestFormatElapsed(t *testing.T) {
	for ms, want := range map[float64]string{
		0:       "00:00",
		999:     "00:00",
		65000:   "01:05",
		3600000: "60:00",
		-10:     "00:00",
	} {
		if got := FormatElapsed(ms); got != want {
			t.Fatalf("FormatElapsed(%v)=%q want %q", ms, got, want)
		}
	}
}

func TestStatusLines(t *testing.T) {
	lines := StatusLines(Status{
		Score:        42,
		Stage:        3,
		ElapsedMs:    125000,
		ActiveRunway: types.Runway09,
		WindDeg:      80,
		Spawned:      4,
		Total:        11,
	})
	want := []string{
		"Score: 42",
		"Stage: 3",
		"Time: 02:05",
		"Active RWY: 09  Wind: 080",
		"Aircraft: 4/11",
	}
	if !slices.Equal(lines, want) {
		t.Fatalf("lines=%q want %q", lines, want)
	}
}

func TestDataTag(t *testing.T) {
	ac := &aircraft.Aircraft{Callsign: "SP-KTW", Type: "A320", Speed: 0.25, Altitude: 8000}
	tag := DataTag(ac)
	if tag[0] != "SP-KTW" || tag[2] != "SPD: 250 kts" || tag[3] != "ALT: 8000 ft" || tag[4] != "AIRBORNE" {
		t.Fatalf("tag=%q", tag)
	}
}

func TestOverlayText(t *testing.T) {
	sc := StageCompleteLines(2, 35, 80)
	if sc[0] != "Stage 2 Complete!" || sc[1] != "Stage Score: 35" || sc[2] != "Total Score: 80" {
		t.Fatalf("stage complete=%q", sc)
	}
	gameOver := GameOverLines(-5, 4)
	if gameOver[0] != "Game Over!" || gameOver[2] != "Final Score: -5" || gameOver[3] != "Reached Stage: 4" {
		t.Fatalf("game over=%q", gameOver)
	}
}

func TestLeaderboardLines(t *testing.T) {
	if got := LeaderboardLines(nil); len(got) != 2 || got[1] != "No scores yet" {
		t.Fatalf("empty board=%q", got)
	}
	got := LeaderboardLines([]scoreboard.Entry{{Callsign: "SP-ONE", Score: 40}, {Callsign: "SP-TWO", Score: 5}})
	if len(got) != 3 || !strings.HasPrefix(got[1], "1. SP-ONE") || !strings.HasSuffix(got[2], "5 pts") {
		t.Fatalf("board=%q", got)
	}
}

func TestAppendCallsign(t *testing.T) {
	if got := AppendCallsign("", []rune("sp-ktw!")); got != "SP-KTW" {
		t.Fatalf("got %q want SP-KTW", got)
	}
	if got := AppendCallsign("ABCDEFGHIJK", []rune("LMN")); got != "ABCDEFGHIJKL" {
		t.Fatalf("got %q, not capped at %d", got, CallsignMaxLen)
	}
	if got := TrimLastRune("SP-"); got != "SP" {
		t.Fatalf("TrimLastRune=%q", got)
	}
	if got := TrimLastRune(""); got != "" {
		t.Fatalf("TrimLastRune(\"\")=%q", got)
	}
}
