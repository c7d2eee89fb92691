package efg

import "github.com/rozlivek/fogcfr/ids"

// PlayerMoveMarker is a reserved observation id appended to a player's own
// AOH when a node gives them the move, so that an infoset (player currently
// acting) can be told apart from an augmented infoset (player not currently
// acting, §3 "Augmented Infoset"). It is distinct from ids.NoObservation.
const PlayerMoveMarker ids.ObservationID = -2

// AOHEntry is one (action, observation) pair of a player's action-observation
// history (§3 AOH).
type AOHEntry struct {
	Action      ids.ActionID
	Observation ids.ObservationID
}

// AOH is a player's action-observation history: a sequence of AOHEntry,
// oldest first. The root AOH for every player is [(NoAction, NoObservation)].
type AOH []AOHEntry

// RootAOH returns the initial AOH shared by every player at the root.
func RootAOH() AOH {
	return AOH{{Action: ids.NoAction, Observation: ids.NoObservation}}
}

// Clone returns a copy of the AOH so callers may mutate it without aliasing
// another node's history (Node construction never mutates a parent's AOH).
func (h AOH) Clone() AOH {
	out := make(AOH, len(h))
	copy(out, h)
	return out
}

// withLastAction returns a copy of h with the action of its last entry
// replaced by a.
func (h AOH) withLastAction(a ids.ActionID) AOH {
	out := h.Clone()
	out[len(out)-1].Action = a
	return out
}

// withLastObservation returns a copy of h with the observation of its last
// entry replaced by o.
func (h AOH) withLastObservation(o ids.ObservationID) AOH {
	out := h.Clone()
	out[len(out)-1].Observation = o
	return out
}

// appended returns a copy of h with a new trailing entry.
func (h AOH) appended(e AOHEntry) AOH {
	out := make(AOH, len(h)+1)
	copy(out, h)
	out[len(h)] = e
	return out
}

// trimmed drops trailing (NoAction, NoObservation) entries beyond position 0,
// per §4.1 "Trailing (NO_ACTION, NO_OBSERVATION) entries ... are trimmed".
func (h AOH) trimmed() AOH {
	end := len(h)
	for end > 1 && h[end-1].Action == ids.NoAction && h[end-1].Observation == ids.NoObservation {
		end--
	}
	return h[:end:end]
}

// IsAOCompatible implements the is_ao_compatible predicate of §4.1/§4.4: one
// sequence must be a prefix of the other under the relation that NoAction
// matches any action and NoObservation matches any observation; positions
// where both are concrete must agree exactly.
func IsAOCompatible(a, b AOH) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].Action != ids.NoAction && b[i].Action != ids.NoAction && a[i].Action != b[i].Action {
			return false
		}
		if a[i].Observation != ids.NoObservation && b[i].Observation != ids.NoObservation &&
			a[i].Observation != b[i].Observation {
			return false
		}
	}
	return true
}
