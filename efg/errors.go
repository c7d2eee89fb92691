package efg

import "github.com/pkg/errors"

// Fatal domain-contract violations (§7). These are programming errors in a
// concrete domain, not recoverable algorithm conditions, so they are
// raised as panics wrapped with a stack trace rather than swallowed.

// ErrInvalidActionID is panicked with when an action id falls outside the
// valid range for a node (§7 InvalidActionId).
var ErrInvalidActionID = errors.New("efg: invalid action id")

// ErrInvalidObservationID names §7's InvalidObservationId. Observation ids
// in domain-supplied Outcomes are not checked anywhere in this module, so no
// code path raises it.
var ErrInvalidObservationID = errors.New("efg: invalid observation id")

// ErrDistributionNotNormalized is panicked with when an OutcomeDistribution's
// probabilities do not sum to 1 within 1e-6 (§7 DistributionNormalization).
var ErrDistributionNotNormalized = errors.New("efg: outcome distribution does not sum to 1")

// ErrInconsistentInfoset is panicked with when two histories that claim the same
// AOH have differing action counts, indicating non-perfect recall (§7
// InconsistentInfoset).
var ErrInconsistentInfoset = errors.New("efg: inconsistent infoset: differing action counts for same AOH")
