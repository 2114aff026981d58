package schema

// OverridesVersion is the schema version of the persisted overrides blob.
const OverridesVersion = 1

// SeatOverride is a user-entered correction for seat-detail fields of one
// DUN. Nil means "not overridden"; an explicit zero is a real value.
type SeatOverride struct {
	RegisteredVoters *float64 `json:"registered_voters,omitempty"`
	TotalVotesCast   *float64 `json:"total_votes_cast,omitempty"`
	TurnoutPct       *float64 `json:"turnout_pct,omitempty"`
	MajorityVotes    *float64 `json:"majority_votes,omitempty"`
}

// CandidateOverride is one entry of a full replacement candidate list for a
// DUN. A list present for a DUN replaces all parsed candidate rows for that
// DUN before aggregation. Votes is a float so hand-edited blobs with
// fractional counts still decode; sanitization truncates it to a whole
// non-negative value.
type CandidateOverride struct {
	CandidateName string   `json:"candidate_name"`
	Party         string   `json:"party"`
	Votes         float64  `json:"votes"`
	VoteSharePct  *float64 `json:"vote_share_pct,omitempty"`
}

// LocalOverrides is the persisted blob of user corrections, keyed by DUN
// code. Values are sanitized on every load, save and merge.
type LocalOverrides struct {
	Version      int                            `json:"version"`
	UpdatedAtISO string                         `json:"updatedAtISO"`
	SeatDetails  map[string]SeatOverride        `json:"seatDetails"`
	Candidates   map[string][]CandidateOverride `json:"candidates"`
}
