package core

import (
	"math"

	"github.com/assiskamu/formula-menang/schema"
)

// Fallback estimators for seats with no enrichment detail. The opponent
// share and majority fractions are calibrated against the jurisdictions
// this engine ships data for.
func estimateOpponentVotes(registeredVoters float64) int {
	return int(math.Round(registeredVoters * 0.34))
}

func estimateMajority(registeredVoters float64) int {
	return max(300, int(math.Round(registeredVoters*0.04)))
}

// overrideDetail applies one local seat-detail override on top of an
// optional enriched row. Each field resolves independently: a nil
// override field keeps the enriched value, a set one wins. When no
// enriched row exists the override becomes the row, with unset fields
// collapsing to zero.
func overrideDetail(existing *schema.SeatDetailsRow, local schema.SeatOverride, dunCode, dunName string) schema.SeatDetailsRow {
	if existing == nil {
		return schema.SeatDetailsRow{
			DunCode:          dunCode,
			DunName:          dunName,
			RegisteredVoters: deref(local.RegisteredVoters),
			TotalVotesCast:   deref(local.TotalVotesCast),
			TurnoutPct:       deref(local.TurnoutPct),
			MajorityVotes:    deref(local.MajorityVotes),
			Source:           "local",
		}
	}

	merged := *existing
	merged.RegisteredVoters = pick(local.RegisteredVoters, existing.RegisteredVoters)
	merged.TotalVotesCast = pick(local.TotalVotesCast, existing.TotalVotesCast)
	merged.TurnoutPct = pick(local.TurnoutPct, existing.TurnoutPct)
	merged.MajorityVotes = pick(local.MajorityVotes, existing.MajorityVotes)
	merged.Source = "local"
	return merged
}

// resolveVoters decides the registered-voter figure and whether it was
// estimated. Precedence is detail row first, then an even split of the
// parent parlimen roll across its DUN count.
func resolveVoters(detail *schema.SeatDetailsRow, estimated float64) (float64, bool) {
	if detail != nil {
		return detail.RegisteredVoters, false
	}
	return estimated, true
}

// resolveOpponentTop decides the prior-election strongest-opponent vote
// count. Real candidate aggregates win; without them, a seat the party
// of interest holds gets a roll-based estimate, and a seat it lost uses
// the winner's own total since the winner is the opponent to beat.
func resolveOpponentTop(agg *schema.CandidateAggregate, winner schema.WinnersRow, partyWon bool, registeredVoters float64) int {
	if agg != nil {
		return agg.RunnerUpVotes
	}
	if partyWon {
		return estimateOpponentVotes(registeredVoters)
	}
	return winner.WinnerVotes
}

// resolveMajority decides the prior-majority figure: enriched detail
// first, estimate otherwise.
func resolveMajority(detail *schema.SeatDetailsRow, registeredVoters float64) int {
	if detail != nil {
		return int(math.Round(detail.MajorityVotes))
	}
	return estimateMajority(registeredVoters)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func pick(override *float64, fallback float64) float64 {
	if override != nil {
		return *override
	}
	return fallback
}
