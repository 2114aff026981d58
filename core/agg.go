package core

import (
	"sort"
	"strings"

	"github.com/assiskamu/formula-menang/schema"
)

// safeParty normalizes a raw party field, substituting the unknown
// sentinel for blank values.
func safeParty(party string) string {
	party = strings.TrimSpace(party)
	if party == "" {
		return schema.UnknownParty
	}
	return party
}

// AggregateCandidates groups candidate rows by DUN code and derives the
// per-seat figures the builder needs: candidate count, runner-up, and
// the rank, votes and margins of the party of interest. The sort is
// stable and descending by votes, so a tie keeps original row order and
// never promotes the party of interest by accident. Aggregate pointer
// fields stay nil when the party fielded no candidate in a race.
func AggregateCandidates(rows []schema.CandidateRow, party string) (map[string][]schema.CandidateRow, map[string]schema.CandidateAggregate) {
	grouped := make(map[string][]schema.CandidateRow)
	for _, row := range rows {
		grouped[row.DunCode] = append(grouped[row.DunCode], row)
	}

	aggregates := make(map[string]schema.CandidateAggregate, len(grouped))
	for dunCode, group := range grouped {
		sorted := make([]schema.CandidateRow, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Votes > sorted[j].Votes
		})

		agg := schema.CandidateAggregate{
			DunCode:       dunCode,
			NumCandidates: len(sorted),
			RunnerUpParty: schema.UnknownParty,
		}
		if len(sorted) > 1 {
			agg.RunnerUpParty = safeParty(sorted[1].Party)
			agg.RunnerUpVotes = sorted[1].Votes
		}

		partyIdx := -1
		for i, candidate := range sorted {
			if strings.EqualFold(safeParty(candidate.Party), party) {
				partyIdx = i
				break
			}
		}
		if partyIdx >= 0 {
			votes := sorted[partyIdx].Votes
			rank := partyIdx + 1
			agg.PartyVotes = &votes
			agg.PartyRank = &rank
			if rank != 1 {
				margin := max(0, sorted[0].Votes-votes+1)
				agg.MarginToWin = &margin
			} else if len(sorted) > 1 {
				margin := max(0, votes-sorted[1].Votes)
				agg.MarginDefend = &margin
			} else {
				// Uncontested: the whole vote count is the cushion.
				margin := votes
				agg.MarginDefend = &margin
			}
		}

		aggregates[dunCode] = agg
	}

	return grouped, aggregates
}
