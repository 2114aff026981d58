package core

import (
	"testing"

	"github.com/assiskamu/formula-menang/schema"
	"github.com/stretchr/testify/assert"
)

func geographyFixture() ([]schema.ParlimenRow, []schema.DunRow) {
	parlimen := []schema.ParlimenRow{
		{ParlimenCode: "P.167", ParlimenName: "Kudat", RegisteredVoters: 60000},
	}
	duns := []schema.DunRow{
		{ParlimenCode: "P.167", ParlimenName: "Kudat", DunCode: "N.01", DunName: "Banggi"},
		{ParlimenCode: "P.167", ParlimenName: "Kudat", DunCode: "N.02", DunName: "Bengkoka"},
	}
	return parlimen, duns
}

func TestBuildSeats(t *testing.T) {
	parlimen, duns := geographyFixture()
	winners := []schema.WinnersRow{
		{DunCode: "N.01", DunName: "Banggi", WinnerName: "Ali", WinnerParty: "BN", WinnerVotes: 8000},
		{DunCode: "N.02", DunName: "Bengkoka", WinnerName: "Abu", WinnerParty: "GRS", WinnerVotes: 6000},
	}

	t.Run("one dun seat per winners row", func(t *testing.T) {
		built := BuildSeats(parlimen, duns, winners, nil, nil, nil, "BN")
		dunSeats := 0
		for _, seat := range built.Seats {
			if seat.Grain == schema.DunGrain {
				dunSeats++
			}
		}
		assert.Equal(t, len(winners), dunSeats)
	})

	t.Run("winner fallback without candidate rows", func(t *testing.T) {
		built := BuildSeats(parlimen, duns, winners, nil, nil, nil, "BN")

		won := seatByID(t, built.Seats, "N.01")
		assert.Equal(t, 8000, won.PartyVotes)
		if assert.NotNil(t, won.PartyRank) {
			assert.Equal(t, 1, *won.PartyRank)
		}

		// Without candidate rows the losing party's true rank is
		// unknowable, so it stays nil rather than guessing 2.
		lost := seatByID(t, built.Seats, "N.02")
		assert.Equal(t, 0, lost.PartyVotes)
		assert.Nil(t, lost.PartyRank)
		assert.Equal(t, 6000, lost.LastOpponentTopVotes)
	})

	t.Run("estimated voters split the parent roll", func(t *testing.T) {
		built := BuildSeats(parlimen, duns, winners, nil, nil, nil, "BN")
		seat := seatByID(t, built.Seats, "N.01")
		assert.True(t, seat.RegisteredVotersEstimated)
		assert.InDelta(t, 30000.0, seat.RegisteredVoters, 0.001)
		assert.Equal(t, estimateMajority(30000), seat.LastMajority)
	})

	t.Run("detail row beats the estimate", func(t *testing.T) {
		details := []schema.SeatDetailsRow{
			{DunCode: "N.01", RegisteredVoters: 21000, TotalVotesCast: 15000, TurnoutPct: 0.71, MajorityVotes: 1234},
		}
		built := BuildSeats(parlimen, duns, winners, details, nil, nil, "BN")
		seat := seatByID(t, built.Seats, "N.01")
		assert.False(t, seat.RegisteredVotersEstimated)
		assert.Equal(t, 21000.0, seat.RegisteredVoters)
		assert.Equal(t, 1234, seat.LastMajority)
		assert.True(t, seat.DetailsAvailable)
		if assert.NotNil(t, seat.TurnoutPct) {
			assert.Equal(t, 0.71, *seat.TurnoutPct)
		}
	})

	t.Run("override beats the detail row", func(t *testing.T) {
		details := []schema.SeatDetailsRow{
			{DunCode: "N.01", RegisteredVoters: 21000, MajorityVotes: 1234},
		}
		voters := 25000.0
		overrides := &schema.LocalOverrides{
			SeatDetails: map[string]schema.SeatOverride{
				"N.01": {RegisteredVoters: &voters},
			},
		}
		built := BuildSeats(parlimen, duns, winners, details, nil, overrides, "BN")
		seat := seatByID(t, built.Seats, "N.01")
		assert.Equal(t, 25000.0, seat.RegisteredVoters)
		// Fields the override leaves nil keep the enriched value.
		assert.Equal(t, 1234, seat.LastMajority)
	})

	t.Run("override candidate list replaces parsed rows", func(t *testing.T) {
		parsed := []schema.CandidateRow{
			candidate("N.02", "Old", "BN", 100),
			candidate("N.02", "Older", "GRS", 90),
		}
		overrides := &schema.LocalOverrides{
			Candidates: map[string][]schema.CandidateOverride{
				"N.02": {
					{CandidateName: "New", Party: "GRS", Votes: 6000},
					{CandidateName: "Newer", Party: "BN", Votes: 5500},
				},
			},
		}
		built := BuildSeats(parlimen, duns, winners, nil, parsed, overrides, "BN")
		seat := seatByID(t, built.Seats, "N.02")
		assert.Equal(t, 5500, seat.PartyVotes)
		if assert.NotNil(t, seat.PartyRank) {
			assert.Equal(t, 2, *seat.PartyRank)
		}
		assert.Equal(t, 2, seat.NumCandidates)
		assert.Equal(t, 5500, seat.LastOpponentTopVotes)
	})

	t.Run("duplicate detail rows reported and first wins", func(t *testing.T) {
		details := []schema.SeatDetailsRow{
			{DunCode: "N.01", RegisteredVoters: 21000},
			{DunCode: "N.01", RegisteredVoters: 99999},
		}
		built := BuildSeats(parlimen, duns, winners, details, nil, nil, "BN")
		assert.Equal(t, []string{"N.01"}, built.DuplicateDetails)
		assert.Equal(t, 21000.0, seatByID(t, built.Seats, "N.01").RegisteredVoters)
	})

	t.Run("unknown dun gets sentinel parlimen", func(t *testing.T) {
		orphan := []schema.WinnersRow{{DunCode: "N.99", DunName: "Hilang", WinnerParty: "GRS", WinnerVotes: 100}}
		built := BuildSeats(parlimen, duns, orphan, nil, nil, nil, "BN")
		seat := seatByID(t, built.Seats, "N.99")
		assert.Equal(t, schema.UnknownParlimenCode, seat.ParlimenCode)
		assert.Equal(t, schema.UnknownParlimenName, seat.ParlimenName)
	})

	t.Run("coverage counters", func(t *testing.T) {
		details := []schema.SeatDetailsRow{{DunCode: "N.01", RegisteredVoters: 21000}}
		parsed := []schema.CandidateRow{candidate("N.02", "A", "GRS", 6000)}
		built := BuildSeats(parlimen, duns, winners, details, parsed, nil, "BN")
		assert.Equal(t, 1, built.DetailCoverage)
		assert.Equal(t, 1, built.CandidateCoverage)
	})
}

func TestBuildParlimenRollup(t *testing.T) {
	parlimen, duns := geographyFixture()
	winners := []schema.WinnersRow{
		{DunCode: "N.01", DunName: "Banggi", WinnerParty: "BN", WinnerVotes: 8000},
		{DunCode: "N.02", DunName: "Bengkoka", WinnerParty: "GRS", WinnerVotes: 6000},
	}

	t.Run("party totals and opponent", func(t *testing.T) {
		built := BuildSeats(parlimen, duns, winners, nil, nil, nil, "BN")
		parent := seatByID(t, built.Seats, "P.167")
		assert.Equal(t, schema.ParlimenGrain, parent.Grain)
		assert.Equal(t, 8000, parent.PartyVotes)
		assert.Equal(t, "BN", parent.WinnerParty)
		assert.Equal(t, 8000, parent.WinnerVotes)
		assert.Equal(t, "GRS", parent.RunnerUpParty)
		assert.Equal(t, 6000, parent.RunnerUpVotes)
		assert.Equal(t, 2000, parent.LastMajority)
		if assert.NotNil(t, parent.PartyRank) {
			assert.Equal(t, 1, *parent.PartyRank)
		}
	})

	t.Run("opponent top votes come from the rollup", func(t *testing.T) {
		built := BuildSeats(parlimen, duns, winners, nil, nil, nil, "BN")
		parent := seatByID(t, built.Seats, "P.167")
		assert.Equal(t, 6000, parent.LastOpponentTopVotes)
	})

	t.Run("uncontested rollup falls back to estimates", func(t *testing.T) {
		solo := []schema.WinnersRow{
			{DunCode: "N.01", DunName: "Banggi", WinnerParty: "BN", WinnerVotes: 8000},
		}
		built := BuildSeats(parlimen, duns, solo, nil, nil, nil, "BN")
		parent := seatByID(t, built.Seats, "P.167")
		assert.Equal(t, estimateOpponentVotes(60000), parent.LastOpponentTopVotes)
		assert.Equal(t, 8000, parent.LastMajority)
	})

	t.Run("tie favors the party of interest", func(t *testing.T) {
		tied := []schema.WinnersRow{
			{DunCode: "N.01", DunName: "Banggi", WinnerParty: "BN", WinnerVotes: 6000},
			{DunCode: "N.02", DunName: "Bengkoka", WinnerParty: "GRS", WinnerVotes: 6000},
		}
		built := BuildSeats(parlimen, duns, tied, nil, nil, nil, "BN")
		parent := seatByID(t, built.Seats, "P.167")
		if assert.NotNil(t, parent.PartyRank) {
			assert.Equal(t, 1, *parent.PartyRank)
		}
	})

	t.Run("parlimen seats come first", func(t *testing.T) {
		built := BuildSeats(parlimen, duns, winners, nil, nil, nil, "BN")
		assert.Equal(t, schema.ParlimenGrain, built.Seats[0].Grain)
	})

	t.Run("parent code appears even when geography misses it", func(t *testing.T) {
		built := BuildSeats(nil, duns, winners, nil, nil, nil, "BN")
		parent := seatByID(t, built.Seats, "P.167")
		assert.True(t, parent.RegisteredVotersEstimated)
		assert.Equal(t, 0.0, parent.RegisteredVoters)
	})
}

func seatByID(t *testing.T, seats []schema.Seat, id string) schema.Seat {
	t.Helper()
	for _, seat := range seats {
		if seat.SeatID == id {
			return seat
		}
	}
	t.Fatalf("seat %s not found", id)
	return schema.Seat{}
}
