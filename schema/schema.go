// Package schema has configs, models and constants for all parts of formula-menang.
package schema

// ParlimenRow is one parent (parliamentary) constituency from the geography table.
type ParlimenRow struct {
	ParlimenCode     string // e.g. "P.167"
	ParlimenName     string
	RegisteredVoters int // jumlah_pemilih for the whole parlimen
}

// DunRow is one child (state assembly) constituency from the geography table.
// ParlimenCode must resolve to a ParlimenRow; unresolved rows get the
// UnknownParlimenCode sentinel during seat construction.
type DunRow struct {
	ParlimenCode string
	ParlimenName string
	DunCode      string // e.g. "N.01"
	DunName      string
}

// WinnersRow is one row of the election winners table, exactly one per DUN.
type WinnersRow struct {
	DunCode     string
	DunName     string
	WinnerName  string
	WinnerParty string
	WinnerVotes int
}

// SeatDetailsRow is optional enrichment for a single DUN. At most one row
// per DUN is honored; duplicates are flagged by the seat builder.
type SeatDetailsRow struct {
	DunCode          string
	DunName          string
	RegisteredVoters float64
	TotalVotesCast   float64
	TurnoutPct       float64
	MajorityVotes    float64
	Source           string // provenance tag, e.g. "spr", "local"
}

// CandidateRow is one candidate result in a single DUN race. Zero-to-many
// rows per DUN; entirely optional enrichment.
type CandidateRow struct {
	DunCode       string
	DunName       string
	CandidateName string
	Party         string
	Votes         int
	VoteSharePct  float64
}

// ProgressRow is one weekly canvassing snapshot for a seat. The latest
// snapshot per seat is the one with the greatest WeekStart string.
type ProgressRow struct {
	WeekStart       string // ISO date, lexicographically ordered
	SeatID          string
	BaseVotes       int
	PersuasionVotes int
	GotvVotes       int
	Persuadables    int
	ConversionRate  float64
}
