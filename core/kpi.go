package core

import (
	"math"

	"github.com/assiskamu/formula-menang/schema"
)

// ComputeSeatMetrics is the core formula layer: a pure function of
// (seat, progress, assumptions, scenario, thresholds). Identical inputs
// always yield identical outputs; a nil progress snapshot is replaced
// by an all-zero one, never an error. Formula degeneracy such as zero
// valid votes resolves to zero, never a panic.
func ComputeSeatMetrics(
	seat schema.Seat,
	progress *schema.ProgressRow,
	assumptions schema.Assumptions,
	scenario string,
	thresholds schema.ThresholdConfig,
) schema.SeatMetrics {
	turnout := assumptions.TurnoutScenario[scenario]
	validVotes := seat.RegisteredVoters * turnout * (1 - assumptions.SpoiledRate)

	bufferVotes := 0
	if assumptions.BufferVotes != nil {
		bufferVotes = *assumptions.BufferVotes
	} else if assumptions.BufferRate != nil {
		bufferVotes = int(math.Round(validVotes * *assumptions.BufferRate))
	}

	minimumToWin := seat.LastOpponentTopVotes + 1
	safeTarget := minimumToWin + bufferVotes

	active := schema.ProgressRow{}
	if progress != nil {
		active = *progress
	}
	totalVote := active.BaseVotes + active.PersuasionVotes + active.GotvVotes
	gap := safeTarget - totalVote
	neededGotv := max(0, gap-(active.BaseVotes+active.PersuasionVotes))

	swingMinimum := seat.LastMajority/2 + 1
	swingPercent := 0.0
	if validVotes != 0 {
		swingPercent = float64(seat.LastMajority) / 2 / validVotes
	}

	partyLeads := seat.PartyLeads()
	marginToWin, bufferToLose, majorityVotes := 0, 0, 0
	if partyLeads {
		bufferToLose = max(0, seat.PartyVotes-seat.RunnerUpVotes-1)
		majorityVotes = max(0, seat.WinnerVotes-seat.RunnerUpVotes)
	} else {
		marginToWin = max(0, seat.WinnerVotes-seat.PartyVotes+1)
	}
	marginToWinPercent, majorityPercent := 0.0, 0.0
	if validVotes != 0 {
		marginToWinPercent = float64(marginToWin) / validVotes
		majorityPercent = float64(majorityVotes) / validVotes
	}

	var flags []string
	if turnout < 0 || turnout > 1 {
		flags = append(flags, schema.FlagTurnoutOutOfRange)
	}
	if assumptions.SpoiledRate < 0 || assumptions.SpoiledRate > 0.10 {
		flags = append(flags, schema.FlagSpoiledOutOfRange)
	}
	if float64(totalVote) > validVotes {
		flags = append(flags, schema.FlagTotalExceedsValid)
	}
	if float64(safeTarget) > validVotes {
		flags = append(flags, schema.FlagTargetExceedsValid)
	}
	if seat.RegisteredVotersEstimated {
		flags = append(flags, schema.FlagVotersEstimated)
	}

	var tier schema.TierLevel
	if partyLeads {
		tier = GetDefendRiskLevel(majorityVotes, majorityPercent, thresholds)
	} else {
		tier = GetAttackLevel(marginToWin, marginToWinPercent, thresholds)
	}

	mainOpponent := seat.WinnerParty
	if partyLeads {
		mainOpponent = seat.RunnerUpParty
	}

	return schema.SeatMetrics{
		Seat:     seat,
		Progress: active,

		Turnout:    turnout,
		ValidVotes: validVotes,

		BufferVotes:  bufferVotes,
		MinimumToWin: minimumToWin,
		SafeTarget:   safeTarget,

		TotalVote:       totalVote,
		GapToSafeTarget: gap,
		NeededGotv:      neededGotv,

		SwingMinimum: swingMinimum,
		SwingPercent: swingPercent,

		MarginToWin:        marginToWin,
		MarginToWinPercent: marginToWinPercent,
		BufferToLose:       bufferToLose,
		MajorityVotes:      majorityVotes,
		MajorityPercent:    majorityPercent,

		MainOpponentParty: mainOpponent,
		Tier:              tier,
		Action:            recommendAction(partyLeads, tier, len(flags) > 0),
		Flags:             flags,
	}
}

// GetAttackLevel classifies a seat the party of interest does not hold.
// Either condition alone trips a rung: a seat is "near" on raw vote
// margin even when the percentage looks safe, and vice versa.
func GetAttackLevel(marginToWin int, marginPct float64, thresholds schema.ThresholdConfig) schema.TierLevel {
	switch {
	case marginToWin <= thresholds.Attack.Near.Votes || marginPct <= thresholds.Attack.Near.Pct:
		return schema.TierNear
	case marginToWin <= thresholds.Attack.Medium.Votes || marginPct <= thresholds.Attack.Medium.Pct:
		return schema.TierMedium
	default:
		return schema.TierFar
	}
}

// GetDefendRiskLevel classifies a seat the party of interest holds,
// with the same either-condition-triggers logic as the attack side.
func GetDefendRiskLevel(majorityVotes int, majorityPct float64, thresholds schema.ThresholdConfig) schema.TierLevel {
	switch {
	case majorityVotes <= thresholds.Defend.HighRisk.Votes || majorityPct <= thresholds.Defend.HighRisk.Pct:
		return schema.TierHighRisk
	case majorityVotes <= thresholds.Defend.MediumRisk.Votes || majorityPct <= thresholds.Defend.MediumRisk.Pct:
		return schema.TierMediumRisk
	default:
		return schema.TierLowRisk
	}
}

// recommendAction picks the tactical recommendation. Data-quality flags
// always win: a recommendation computed from bad inputs is worse than
// no recommendation.
func recommendAction(partyLeads bool, tier schema.TierLevel, flagged bool) schema.ActionCode {
	switch {
	case flagged:
		return schema.ActionReviewData
	case !partyLeads && tier == schema.TierNear:
		return schema.ActionPersuasionGtv
	case partyLeads && tier == schema.TierHighRisk:
		return schema.ActionDefendGotv
	case partyLeads:
		return schema.ActionMaintain
	default:
		return schema.ActionBaseBuilding
	}
}

// GetLatestProgress reduces the weekly progress table to the newest
// snapshot per seat, by lexicographic week-start comparison.
func GetLatestProgress(rows []schema.ProgressRow) map[string]schema.ProgressRow {
	bySeat := make(map[string]schema.ProgressRow)
	for _, row := range rows {
		existing, ok := bySeat[row.SeatID]
		if !ok || row.WeekStart > existing.WeekStart {
			bySeat[row.SeatID] = row
		}
	}
	return bySeat
}

// ActionNotes expands a metric row into operator-facing notes.
func ActionNotes(m *schema.SeatMetrics) []string {
	var notes []string
	if float64(m.GapToSafeTarget) > math.Max(1000, float64(m.SafeTarget)*0.1) {
		notes = append(notes, "Large gap: scale up persuasion and GOTV effort now.")
	}
	if float64(m.TotalVote) > m.ValidVotes || float64(m.SafeTarget) > m.ValidVotes {
		notes = append(notes, "Unrealistic target: revisit vote targets and turnout assumptions.")
	}
	if m.SwingPercent <= 0.02 {
		notes = append(notes, "Marginal seat: move fast to hold fence-sitting voters.")
	}
	if len(notes) == 0 {
		notes = append(notes, "Steady performance: continue weekly monitoring and data refreshes.")
	}
	return notes
}
