package efgcache

import (
	"strconv"
	"strings"

	"github.com/rozlivek/fogcfr/efg"
	"github.com/rozlivek/fogcfr/ids"
)

// InfosetKey returns a stable string identifier for player p's (augmented)
// infoset at a node with the given AOH (§3 "Infoset"/"Augmented Infoset").
// Two histories share an infoset iff they share a player and an AOH.
func InfosetKey(p ids.Player, h efg.AOH) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(p)))
	b.WriteByte('|')
	for _, e := range h {
		b.WriteString(strconv.Itoa(int(e.Action)))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(e.Observation)))
		b.WriteByte(';')
	}
	return b.String()
}

// PublicStateKey returns a stable string identifier for the public state
// reached along the given public-observation sequence (§3 "Public State").
// The sequence alone does not determine the depth (an outcome whose public
// observation is NoObservation adds a round without extending it), so the
// depth is folded into the key to keep such public states apart.
func PublicStateKey(depth uint, seq []ids.ObservationID) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(depth), 10))
	b.WriteByte('|')
	for _, o := range seq {
		b.WriteString(strconv.Itoa(int(o)))
		b.WriteByte(';')
	}
	return b.String()
}
