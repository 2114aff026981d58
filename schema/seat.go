package schema

// CandidateAggregate holds per-DUN figures derived from candidate-level rows.
// Pointer fields are absent (nil) when the party of interest fielded no
// candidate in the race; 0 is a legitimate vote count and stays distinct
// from "no data".
type CandidateAggregate struct {
	DunCode       string
	NumCandidates int
	RunnerUpParty string
	RunnerUpVotes int
	PartyVotes    *int // votes of the party of interest
	PartyRank     *int // 1-based rank after stable descending sort
	MarginToWin   *int // defined only when the party did not place first
	MarginDefend  *int // defined only when the party placed first
}

// Seat is the unified entity built by the seat builder from the join of all
// source tables plus local overrides. It is never parsed directly and never
// mutated in place; an override change triggers a full rebuild.
type Seat struct {
	SeatID       string
	SeatName     string
	State        string
	Grain        Grain
	ParlimenCode string
	ParlimenName string
	DunCode      string // empty for parlimen-grain seats
	DunName      string
	WinnerName   string

	RegisteredVoters          float64
	RegisteredVotersEstimated bool

	// Prior-election reference figures.
	LastOpponentTopVotes int
	LastMajority         int
	Corners              int // number of candidates in the prior race

	// Current-election outcome.
	WinnerParty   string
	WinnerVotes   int
	RunnerUpParty string
	RunnerUpVotes int
	PartyVotes    int
	PartyRank     *int // nil when not derivable from candidate-level data

	// Enrichment availability and raw detail figures.
	DetailsAvailable    bool
	CandidatesAvailable bool
	TotalVotesCast      *float64
	TurnoutPct          *float64
	MajorityVotes       *float64
	NumCandidates       int
	MarginToWin         *int
	MarginDefend        *int
}

// PartyLeads reports whether the party of interest holds rank 1 in this seat.
func (s *Seat) PartyLeads() bool {
	return s.PartyRank != nil && *s.PartyRank == 1
}

// BaselineValidation is the integrity report for the winners table.
type BaselineValidation struct {
	TotalDun          int
	DuplicateDunCodes []string // sorted lexicographically
	Warnings          []string
	SourceFile        string
	PartyWins         int
	OtherWins         int
}
