// Command playmatch runs a single play.Match between two freshly-trained
// OOS players over one of this module's test domains, reporting each
// player's total reward (§4.7, §6.4).
//
// It is grounded on the pack's flag-based driver binaries (e.g.
// timpalpant-alphacats/cmd/battle_strategies), generalized to this module's
// yaml config loading and zerolog logging instead of glog, with a
// progressbar (perplext-LLMrecon's progress indicators) standing in for the
// preplay phase's otherwise silent iteration loop.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/rozlivek/fogcfr/config"
	"github.com/rozlivek/fogcfr/domain"
	"github.com/rozlivek/fogcfr/efgcache"
	"github.com/rozlivek/fogcfr/internal/testdomain"
	"github.com/rozlivek/fogcfr/oos"
	"github.com/rozlivek/fogcfr/play"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml config file (optional, defaults applied otherwise)")
	domainName := flag.String("domain", "matching_pennies", "test domain to play: matching_pennies, goofspiel, private_deal")
	goofspielN := flag.Int("goofspiel_n", 5, "cards per hand, when -domain=goofspiel")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("playmatch: loading config")
		}
		cfg = loaded
	}
	if err := cfg.ApplyLogLevel(); err != nil {
		log.Fatal().Err(err).Msg("playmatch: applying log level")
	}

	dom, err := selectDomain(*domainName, *goofspielN)
	if err != nil {
		log.Fatal().Err(err).Msg("playmatch: selecting domain")
	}

	var algs [2]play.Algorithm
	for p := range algs {
		algs[p] = oos.New(efgcache.NewOOSData(dom), cfg.OOS)
	}

	bar := progressbar.NewOptions(cfg.Match.PreplayBudget[0]+cfg.Match.PreplayBudget[1],
		progressbar.OptionSetDescription("preplay"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWriter(os.Stderr),
	)
	for p := range algs {
		budget := cfg.Match.PreplayBudget[p]
		for i := 0; i < budget; i++ {
			if algs[p].RunPlayIteration(nil) != oos.Continue {
				break
			}
			bar.Add(1)
		}
	}
	bar.Finish()

	rewards := play.Match(dom, algs, [2]int{0, 0}, cfg.Match.MoveBudget, cfg.Match.BudgetType, cfg.Match.Seed)
	log.Info().Float64("player0", rewards[0]).Float64("player1", rewards[1]).Msg("playmatch: match complete")
}

func selectDomain(name string, goofspielN int) (domain.Domain, error) {
	switch name {
	case "matching_pennies":
		return testdomain.MatchingPennies{}, nil
	case "goofspiel":
		return testdomain.Goofspiel{N: goofspielN}, nil
	case "private_deal":
		return testdomain.PrivateDeal{}, nil
	default:
		return nil, errUnknownDomain(name)
	}
}

type errUnknownDomain string

func (e errUnknownDomain) Error() string {
	return "playmatch: unknown domain " + string(e)
}
