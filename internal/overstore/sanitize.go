package overstore

import (
	"math"
	"strings"
	"time"

	"github.com/assiskamu/formula-menang/schema"
)

// DefaultOverrides returns a clean, structurally valid empty blob.
func DefaultOverrides() *schema.LocalOverrides {
	return &schema.LocalOverrides{
		Version:      schema.OverridesVersion,
		UpdatedAtISO: time.Now().UTC().Format(time.RFC3339),
		SeatDetails:  make(map[string]schema.SeatOverride),
		Candidates:   make(map[string][]schema.CandidateOverride),
	}
}

// Sanitize normalizes an overrides blob: numeric fields coerce to a
// finite number or become nil (absence is distinct from an explicit
// zero), vote counts truncate to non-negative integers, strings trim,
// and a candidate entry with an empty name, empty party and zero votes
// is dropped. The version is always forced to the current schema
// version. The input is not mutated.
func Sanitize(raw *schema.LocalOverrides) *schema.LocalOverrides {
	if raw == nil {
		return DefaultOverrides()
	}

	out := &schema.LocalOverrides{
		Version:      schema.OverridesVersion,
		UpdatedAtISO: raw.UpdatedAtISO,
		SeatDetails:  make(map[string]schema.SeatOverride, len(raw.SeatDetails)),
		Candidates:   make(map[string][]schema.CandidateOverride, len(raw.Candidates)),
	}
	if out.UpdatedAtISO == "" {
		out.UpdatedAtISO = time.Now().UTC().Format(time.RFC3339)
	}

	for code, detail := range raw.SeatDetails {
		out.SeatDetails[code] = schema.SeatOverride{
			RegisteredVoters: finiteOrNil(detail.RegisteredVoters),
			TotalVotesCast:   finiteOrNil(detail.TotalVotesCast),
			TurnoutPct:       finiteOrNil(detail.TurnoutPct),
			MajorityVotes:    finiteOrNil(detail.MajorityVotes),
		}
	}

	for code, rows := range raw.Candidates {
		sanitized := make([]schema.CandidateOverride, 0, len(rows))
		for _, row := range rows {
			entry := schema.CandidateOverride{
				CandidateName: strings.TrimSpace(row.CandidateName),
				Party:         strings.TrimSpace(row.Party),
				Votes:         wholeVotes(row.Votes),
				VoteSharePct:  finiteOrNil(row.VoteSharePct),
			}
			if entry.CandidateName == "" && entry.Party == "" && entry.Votes == 0 {
				continue
			}
			sanitized = append(sanitized, entry)
		}
		out.Candidates[code] = sanitized
	}

	return out
}

// wholeVotes truncates a vote count to a non-negative whole number.
// NaN and infinities collapse to zero.
func wholeVotes(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Trunc(v)
}

func finiteOrNil(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	value := *v
	return &value
}
