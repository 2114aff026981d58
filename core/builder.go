package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/assiskamu/formula-menang/schema"
)

// BuildResult is the output of one seat-building pass.
type BuildResult struct {
	Seats             []schema.Seat // parlimen grain first, then dun grain
	CandidatesByDun   map[string][]schema.CandidateRow
	DetailCoverage    int
	CandidateCoverage int
	DuplicateDetails  []string // detail-table codes seen more than once, sorted
}

// BuildSeats is the central data-fusion step. It joins geography,
// winners, optional enrichment details, optional candidate rows and
// local overrides into one Seat per DUN, then synthesizes one rolled-up
// Seat per parlimen. Every winners row yields exactly one DUN seat;
// geography and enrichment are left-joined and never drop a seat.
func BuildSeats(
	parlimenRows []schema.ParlimenRow,
	dunRows []schema.DunRow,
	winnersRows []schema.WinnersRow,
	detailRows []schema.SeatDetailsRow,
	candidateRows []schema.CandidateRow,
	overrides *schema.LocalOverrides,
	party string,
) BuildResult {
	dunsByParlimen := make(map[string][]schema.DunRow)
	dunMetaByCode := make(map[string]schema.DunRow, len(dunRows))
	for _, row := range dunRows {
		dunsByParlimen[row.ParlimenCode] = append(dunsByParlimen[row.ParlimenCode], row)
		if _, ok := dunMetaByCode[row.DunCode]; !ok {
			dunMetaByCode[row.DunCode] = row
		}
	}
	parlimenByCode := make(map[string]schema.ParlimenRow, len(parlimenRows))
	for _, row := range parlimenRows {
		parlimenByCode[row.ParlimenCode] = row
	}

	// First detail row per DUN wins; extra rows are reported, not used.
	detailsByDun := make(map[string]*schema.SeatDetailsRow)
	detailCounts := make(map[string]int)
	for i := range detailRows {
		row := detailRows[i]
		detailCounts[row.DunCode]++
		if _, ok := detailsByDun[row.DunCode]; !ok {
			detailsByDun[row.DunCode] = &row
		}
	}
	var duplicateDetails []string
	for code, count := range detailCounts {
		if count > 1 {
			duplicateDetails = append(duplicateDetails, code)
		}
	}
	sort.Strings(duplicateDetails)

	if overrides != nil {
		for dunCode, local := range overrides.SeatDetails {
			merged := overrideDetail(detailsByDun[dunCode], local, dunCode, dunMetaByCode[dunCode].DunName)
			detailsByDun[dunCode] = &merged
		}
	}

	// An override candidate list replaces all parsed rows for its DUN
	// before the single aggregation pass over the merged universe.
	grouped, _ := AggregateCandidates(candidateRows, party)
	if overrides != nil {
		for dunCode, entries := range overrides.Candidates {
			dunName := dunMetaByCode[dunCode].DunName
			replacement := make([]schema.CandidateRow, 0, len(entries))
			for _, entry := range entries {
				replacement = append(replacement, schema.CandidateRow{
					DunCode:       dunCode,
					DunName:       dunName,
					CandidateName: entry.CandidateName,
					Party:         entry.Party,
					Votes:         int(entry.Votes),
					VoteSharePct:  deref(entry.VoteSharePct),
				})
			}
			grouped[dunCode] = replacement
		}
	}
	merged := make([]schema.CandidateRow, 0, len(candidateRows))
	for _, code := range sortedKeys(grouped) {
		merged = append(merged, grouped[code]...)
	}
	groupedCandidates, aggregates := AggregateCandidates(merged, party)

	dunSeats := make([]schema.Seat, 0, len(winnersRows))
	for _, winner := range winnersRows {
		dunSeats = append(dunSeats, buildDunSeat(
			winner, dunMetaByCode, parlimenByCode, dunsByParlimen,
			detailsByDun[winner.DunCode], aggregates, groupedCandidates, party))
	}

	parlimenSeats := buildParlimenSeats(parlimenRows, parlimenByCode, dunSeats, party)

	detailCoverage, candidateCoverage := 0, 0
	for _, seat := range dunSeats {
		if seat.DetailsAvailable {
			detailCoverage++
		}
		if seat.CandidatesAvailable {
			candidateCoverage++
		}
	}

	return BuildResult{
		Seats:             append(parlimenSeats, dunSeats...),
		CandidatesByDun:   groupedCandidates,
		DetailCoverage:    detailCoverage,
		CandidateCoverage: candidateCoverage,
		DuplicateDetails:  duplicateDetails,
	}
}

func buildDunSeat(
	winner schema.WinnersRow,
	dunMetaByCode map[string]schema.DunRow,
	parlimenByCode map[string]schema.ParlimenRow,
	dunsByParlimen map[string][]schema.DunRow,
	detail *schema.SeatDetailsRow,
	aggregates map[string]schema.CandidateAggregate,
	groupedCandidates map[string][]schema.CandidateRow,
	party string,
) schema.Seat {
	meta, hasMeta := dunMetaByCode[winner.DunCode]

	// Roll-based fallback: split the parent roll evenly over its DUNs.
	var estimatedVoters float64
	parlimenCode := schema.UnknownParlimenCode
	parlimenName := schema.UnknownParlimenName
	if hasMeta {
		parlimenCode = meta.ParlimenCode
		parlimenName = meta.ParlimenName
		if parlimen, ok := parlimenByCode[meta.ParlimenCode]; ok {
			if count := len(dunsByParlimen[meta.ParlimenCode]); count > 0 {
				estimatedVoters = float64(parlimen.RegisteredVoters) / float64(count)
			}
		}
	}

	registeredVoters, estimated := resolveVoters(detail, estimatedVoters)
	partyWon := strings.EqualFold(winner.WinnerParty, party)

	var agg *schema.CandidateAggregate
	if a, ok := aggregates[winner.DunCode]; ok {
		agg = &a
	}

	seat := schema.Seat{
		SeatID:       winner.DunCode,
		SeatName:     fmt.Sprintf("%s %s", winner.DunCode, winner.DunName),
		State:        schema.DefaultState,
		Grain:        schema.DunGrain,
		ParlimenCode: parlimenCode,
		ParlimenName: parlimenName,
		DunCode:      winner.DunCode,
		DunName:      winner.DunName,
		WinnerName:   winner.WinnerName,

		RegisteredVoters:          registeredVoters,
		RegisteredVotersEstimated: estimated,

		LastOpponentTopVotes: resolveOpponentTop(agg, winner, partyWon, registeredVoters),
		LastMajority:         resolveMajority(detail, registeredVoters),

		WinnerParty:   winner.WinnerParty,
		WinnerVotes:   winner.WinnerVotes,
		RunnerUpParty: schema.UnknownParty,

		DetailsAvailable:    detail != nil,
		CandidatesAvailable: len(groupedCandidates[winner.DunCode]) > 0,
	}
	if detail != nil {
		total, turnout, majority := detail.TotalVotesCast, detail.TurnoutPct, detail.MajorityVotes
		seat.TotalVotesCast = &total
		seat.TurnoutPct = &turnout
		seat.MajorityVotes = &majority
	}

	if agg != nil {
		seat.Corners = agg.NumCandidates
		seat.NumCandidates = agg.NumCandidates
		seat.RunnerUpParty = agg.RunnerUpParty
		seat.RunnerUpVotes = agg.RunnerUpVotes
		seat.PartyVotes = derefInt(agg.PartyVotes)
		seat.PartyRank = agg.PartyRank
		seat.MarginToWin = agg.MarginToWin
		seat.MarginDefend = agg.MarginDefend
		return seat
	}

	// Winner-table fallback. Without candidate rows the true rank of a
	// losing party cannot be determined, so it stays nil rather than 2.
	if partyWon {
		seat.PartyVotes = winner.WinnerVotes
		rank := 1
		seat.PartyRank = &rank
	}
	return seat
}

func buildParlimenSeats(
	parlimenRows []schema.ParlimenRow,
	parlimenByCode map[string]schema.ParlimenRow,
	dunSeats []schema.Seat,
	party string,
) []schema.Seat {
	childrenByParlimen := make(map[string][]schema.Seat)
	for _, seat := range dunSeats {
		childrenByParlimen[seat.ParlimenCode] = append(childrenByParlimen[seat.ParlimenCode], seat)
	}

	// Geography order first, then any codes only the children know about.
	seen := make(map[string]bool, len(parlimenRows))
	codes := make([]string, 0, len(parlimenRows))
	for _, row := range parlimenRows {
		if !seen[row.ParlimenCode] {
			seen[row.ParlimenCode] = true
			codes = append(codes, row.ParlimenCode)
		}
	}
	for _, seat := range dunSeats {
		if !seen[seat.ParlimenCode] {
			seen[seat.ParlimenCode] = true
			codes = append(codes, seat.ParlimenCode)
		}
	}

	seats := make([]schema.Seat, 0, len(codes))
	for _, code := range codes {
		parlimen, hasParlimen := parlimenByCode[code]
		children := childrenByParlimen[code]

		totalByParty := make(map[string]float64)
		partyVotes := 0
		for _, child := range children {
			totalByParty[child.WinnerParty] += float64(child.WinnerVotes)
			partyVotes += child.PartyVotes
		}

		winnerParty, winnerVotes := topParty(totalByParty, "")
		opponentParty, opponentVotes := topParty(totalByParty, party)
		if winnerParty == "" {
			winnerParty = schema.UnknownParty
		}
		if opponentParty == "" {
			opponentParty = schema.UnknownParty
		}

		parlimenName := schema.UnknownParlimenName
		registeredVoters := 0.0
		if hasParlimen {
			parlimenName = parlimen.ParlimenName
			registeredVoters = float64(parlimen.RegisteredVoters)
		}

		lastOpponentTop := int(opponentVotes)
		if lastOpponentTop == 0 {
			lastOpponentTop = estimateOpponentVotes(registeredVoters)
		}
		lastMajority := abs(partyVotes - int(opponentVotes))
		if lastMajority == 0 {
			lastMajority = estimateMajority(registeredVoters)
		}

		partyLeads := strings.EqualFold(winnerParty, party)
		runnerUpParty, runnerUpVotes := party, partyVotes
		if partyLeads {
			runnerUpParty, runnerUpVotes = opponentParty, int(opponentVotes)
		}

		// Tie favors the party of interest.
		rank := 2
		if float64(partyVotes) >= winnerVotes {
			rank = 1
		}

		seats = append(seats, schema.Seat{
			SeatID:       code,
			SeatName:     fmt.Sprintf("%s %s", code, parlimenName),
			State:        schema.DefaultState,
			Grain:        schema.ParlimenGrain,
			ParlimenCode: code,
			ParlimenName: parlimenName,

			RegisteredVoters:          registeredVoters,
			RegisteredVotersEstimated: !hasParlimen,

			LastOpponentTopVotes: lastOpponentTop,
			LastMajority:         lastMajority,
			Corners:              3,

			WinnerParty:   winnerParty,
			WinnerVotes:   int(winnerVotes),
			RunnerUpParty: runnerUpParty,
			RunnerUpVotes: runnerUpVotes,
			PartyVotes:    partyVotes,
			PartyRank:     &rank,
		})
	}
	return seats
}

// topParty returns the party with the highest summed total, skipping
// the excluded party when one is given. Ties resolve to the
// lexicographically smaller name so rollups stay deterministic.
func topParty(totals map[string]float64, exclude string) (string, float64) {
	best, bestVotes := "", 0.0
	for _, name := range sortedKeys(totals) {
		if exclude != "" && strings.EqualFold(name, exclude) {
			continue
		}
		if best == "" || totals[name] > bestVotes {
			best, bestVotes = name, totals[name]
		}
	}
	return best, bestVotes
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
