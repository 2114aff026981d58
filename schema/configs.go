package schema

// Assumptions holds the named turnout scenarios and ballot assumptions that
// feed the metrics engine. BufferVotes takes precedence over BufferRate when
// both are present.
type Assumptions struct {
	TurnoutScenario map[string]float64 `json:"turnout_scenario"`
	SpoiledRate     float64            `json:"spoiled_rate"`
	BufferVotes     *int               `json:"buffer_votes,omitempty"`
	BufferRate      *float64           `json:"buffer_rate,omitempty"`
}

// TierCut is one rung of a threshold ladder. A seat trips the rung when its
// vote figure is at or under Votes OR its percentage figure is at or under
// Pct; either condition alone triggers.
type TierCut struct {
	Votes int     `json:"votes"`
	Pct   float64 `json:"pct"`
}

// AttackThresholds classifies seats the party of interest does not hold.
type AttackThresholds struct {
	Near   TierCut `json:"near"`
	Medium TierCut `json:"medium"`
}

// DefendThresholds classifies seats the party of interest holds.
type DefendThresholds struct {
	HighRisk   TierCut `json:"high_risk"`
	MediumRisk TierCut `json:"medium_risk"`
}

// ThresholdConfig carries both ladders. The two sides are independently
// tunable; nothing couples the attack cuts to the defend cuts.
type ThresholdConfig struct {
	Attack AttackThresholds `json:"attack"`
	Defend DefendThresholds `json:"defend"`
}

// DefaultAssumptions returns the immutable fallback assumptions used when no
// assumptions file can be loaded.
func DefaultAssumptions() Assumptions {
	rate := 0.02
	return Assumptions{
		TurnoutScenario: map[string]float64{"low": 0.55, "base": 0.65, "high": 0.75},
		SpoiledRate:     0.02,
		BufferRate:      &rate,
	}
}

// DefaultThresholds returns the immutable fallback threshold ladders.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		Attack: AttackThresholds{
			Near:   TierCut{Votes: 500, Pct: 0.02},
			Medium: TierCut{Votes: 1500, Pct: 0.06},
		},
		Defend: DefendThresholds{
			HighRisk:   TierCut{Votes: 300, Pct: 0.02},
			MediumRisk: TierCut{Votes: 1000, Pct: 0.05},
		},
	}
}
