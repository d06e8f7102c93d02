package simulation

import (
	"atc-radar/pkg/types"
)

type RadioMessage struct {
	Timestamp float64
	Callsign  types.Callsign
	Message   string
	IsUrgent  bool
}

func (tm *TrafficManager) AddRadioMessage(timestamp float64, callsign types.Callsign, message string, isUrgent bool) {
	msg := RadioMessage{
		Timestamp: timestamp,
		Callsign:  callsign,
		Message:   message,
		IsUrgent:  isUrgent,
	}
	tm.RadioLog = append(tm.RadioLog, msg)

	if len(tm.RadioLog) > tm.maxRadioLogSize {
		tm.RadioLog = tm.RadioLog[len(tm.RadioLog)-tm.maxRadioLogSize:]
	}
}

// RecentRadio returns up to n of the newest messages, oldest first.
func (tm *TrafficManager) RecentRadio(n int) []RadioMessage {
	if n <= 0 {
		return nil
	}
	if n > len(tm.RadioLog) {
		n = len(tm.RadioLog)
	}
	out := make([]RadioMessage, n)
	copy(out, tm.RadioLog[len(tm.RadioLog)-n:])
	return out
}
