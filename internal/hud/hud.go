// Package hud formats the text shown around the radar scope. Both the
// window and terminal clients draw these lines.
package hud

import (
	"fmt"
	"math"

	"atc-radar/internal/game/aircraft"
	"atc-radar/internal/scene"
	"atc-radar/internal/scoreboard"
	"atc-radar/pkg/types"
)

type Status struct {
	Phase        string
	Score        int
	Stage        int
	ElapsedMs    float64
	ActiveRunway types.RunwayDirection
	WindDeg      float64
	Spawned      int
	Total        int
	Level        int
}

func StatusFromScene(s *scene.Scene) Status {
	st := Status{
		Phase:        scene.PhaseStringMap[s.Phase()],
		Score:        s.State.Score(),
		Stage:        s.State.Stage(),
		ElapsedMs:    s.Duration(),
		ActiveRunway: s.Traffic.ActiveDirection(),
		Spawned:      s.Traffic.SpawnedInStage(),
		Total:        s.Traffic.StageLimit(),
		Level:        s.State.Level(),
	}
	if s.Airspace.Airport != nil {
		st.WindDeg = s.Airspace.Airport.WindDeg
	}
	return st
}

// FormatElapsed renders milliseconds as mm:ss.
func FormatElapsed(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		ms = 0
	}
	total := int(ms / 1000)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func StatusLines(st Status) []string {
	rwy := string(st.ActiveRunway)
	if rwy == "" {
		rwy = "--"
	}
	lines := []string{
		fmt.Sprintf("Score: %d", st.Score),
		fmt.Sprintf("Stage: %d", st.Stage),
		fmt.Sprintf("Time: %s", FormatElapsed(st.ElapsedMs)),
		fmt.Sprintf("Active RWY: %s  Wind: %03.0f", rwy, st.WindDeg),
	}
	if st.Total > 0 {
		lines = append(lines, fmt.Sprintf("Aircraft: %d/%d", st.Spawned, st.Total))
	}
	if st.Level > 0 {
		lines = append(lines, fmt.Sprintf("Level: %d", st.Level))
	}
	return lines
}

// DataTag is the label drawn next to an aircraft on the scope.
func DataTag(ac *aircraft.Aircraft) []string {
	return []string{
		string(ac.Callsign),
		ac.Type,
		fmt.Sprintf("SPD: %d kts", int(math.Floor(ac.Speed*1000))),
		fmt.Sprintf("ALT: %.0f ft", ac.Altitude),
		aircraft.StateStringMap[ac.State()],
	}
}

func StageCompleteLines(stage, stageScore, totalScore int) []string {
	return []string{
		fmt.Sprintf("Stage %d Complete!", stage),
		fmt.Sprintf("Stage Score: %d", stageScore),
		fmt.Sprintf("Total Score: %d", totalScore),
		"Press ENTER for the next stage",
	}
}

func GameOverLines(score, stage int) []string {
	return []string{
		"Game Over!",
		"Your score dropped below zero",
		fmt.Sprintf("Final Score: %d", score),
		fmt.Sprintf("Reached Stage: %d", stage),
		"Press ENTER to restart",
	}
}

func LeaderboardLines(entries []scoreboard.Entry) []string {
	lines := []string{"Best Scores"}
	if len(entries) == 0 {
		return append(lines, "No scores yet")
	}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %-12s %5d pts", i+1, e.Callsign, e.Score))
	}
	return lines
}

// CallsignMaxLen bounds what the callsign prompt accepts.
const CallsignMaxLen = 12

// AppendCallsign adds typed runes to a callsign, keeping letters, digits
// and dashes, upper-cased, up to CallsignMaxLen.
func AppendCallsign(current string, typed []rune) string {
	out := []rune(current)
	for _, r := range typed {
		if len(out) >= CallsignMaxLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-'a'+'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			out = append(out, r)
		}
	}
	return string(out)
}

func TrimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
