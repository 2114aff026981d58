package schema

// SeatMetrics is the computed output of the metrics engine: one per seat per
// (assumptions, scenario, thresholds) combination. Recomputed whenever any
// input changes; never persisted.
type SeatMetrics struct {
	Seat     Seat        `json:"seat"`
	Progress ProgressRow `json:"progress"`

	Turnout    float64 `json:"turnout"`
	ValidVotes float64 `json:"valid_votes"`

	BufferVotes  int `json:"buffer_votes"`
	MinimumToWin int `json:"minimum_to_win"` // last opponent top votes + 1
	SafeTarget   int `json:"safe_target"`    // minimum-to-win + buffer

	TotalVote       int `json:"total_vote"`
	GapToSafeTarget int `json:"gap_to_safe_target"` // negative when target already met
	NeededGotv      int `json:"needed_gotv_to_close_gap"`

	SwingMinimum int     `json:"swing_minimum"`
	SwingPercent float64 `json:"swing_percent"`

	MarginToWin        int     `json:"margin_to_win"`
	MarginToWinPercent float64 `json:"margin_to_win_percent"`
	BufferToLose       int     `json:"buffer_to_lose"`
	MajorityVotes      int     `json:"majority_votes"`
	MajorityPercent    float64 `json:"majority_percent"`

	MainOpponentParty string     `json:"main_opponent_party"`
	Tier              TierLevel  `json:"tier"`
	Action            ActionCode `json:"action"`
	Flags             []string   `json:"flags"`
}

// Defending reports whether this metric row is on the defend side.
func (m *SeatMetrics) Defending() bool {
	return m.Seat.PartyLeads()
}

// AnalysisResult is the outcome of one full recompute pass over the dataset.
// Parlimen-grain metrics come first, then DUN-grain metrics, matching the
// order seats are built in.
type AnalysisResult struct {
	Metrics           []SeatMetrics
	Validation        BaselineValidation
	Warnings          []string
	DetailCoverage    int
	CandidateCoverage int
}

// DunMetrics returns only the child-grain metric rows.
func (r *AnalysisResult) DunMetrics() []SeatMetrics {
	out := make([]SeatMetrics, 0, len(r.Metrics))
	for _, m := range r.Metrics {
		if m.Seat.Grain == DunGrain {
			out = append(out, m)
		}
	}
	return out
}

// ParlimenMetrics returns only the parent-grain metric rows.
func (r *AnalysisResult) ParlimenMetrics() []SeatMetrics {
	out := make([]SeatMetrics, 0, len(r.Metrics))
	for _, m := range r.Metrics {
		if m.Seat.Grain == ParlimenGrain {
			out = append(out, m)
		}
	}
	return out
}
