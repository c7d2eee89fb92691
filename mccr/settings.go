package mccr

import (
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/oos"
)

// Settings configures one Resolver instance (§6.3, supplemented feature 4).
type Settings struct {
	OOS oos.Settings `yaml:"oos"`

	// GadgetExploration and GadgetInfosetBiasing are the gadget-local
	// analogues of OOS.Exploration/TargetBiasing, kept distinct from the
	// trunk's so the gadget chance node can explore more aggressively than
	// the trunk without perturbing preplay (supplemented feature 4).
	GadgetExploration    float64 `yaml:"gadget_exploration"`
	GadgetInfosetBiasing float64 `yaml:"gadget_infoset_biasing"`

	RetentionPolicy efgcache.RetentionPolicy `yaml:"retention_policy"`
}

// DefaultSettings mirrors oos.DefaultSettings with gadget-local exploration
// fixed at a higher rate than the trunk's, and KeepData retention.
func DefaultSettings() Settings {
	return Settings{
		OOS:                  oos.DefaultSettings(),
		GadgetExploration:    0.9,
		GadgetInfosetBiasing: 0.9,
		RetentionPolicy:      efgcache.KeepData,
	}
}
