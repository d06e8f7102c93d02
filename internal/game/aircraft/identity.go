package aircraft

import (
	"atc-radar/pkg/rand"
	"atc-radar/pkg/types"
)

var CommonTypes = []string{
	"A320", "A321", "B738", "A319", "E190",
	"A333", "B772", "B788", "A359", "B789",
	"DH8D", "AT76", "E170", "CRJ9", "A220",
}

const callsignLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func RandomType(src rand.Source) string {
	return rand.SampleSlice(src, CommonTypes)
}

// RandomCallsign returns a registration-style tag such as SP-KTW.
func RandomCallsign(src rand.Source) types.Callsign {
	b := []byte("SP-")
	for range 3 {
		b = append(b, callsignLetters[src.Intn(len(callsignLetters))])
	}
	return types.Callsign(b)
}
