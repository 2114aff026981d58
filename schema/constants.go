package schema

// Custom string types for type safety.
type (
	// Grain distinguishes child seats from rolled-up parent seats.
	Grain string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for override storage.
	DatabaseBackend string

	// TierLevel is a risk (defend) or opportunity (attack) classification bucket.
	TierLevel string

	// ActionCode identifies the recommended tactical action for a seat.
	ActionCode string

	// ActionTag is one stage of the canvassing funnel.
	ActionTag string

	// MergeMode controls how imported overrides combine with stored ones.
	MergeMode string
)

// ExpectedDunTotal is the full DUN roll for the jurisdiction (Sabah).
// The winners table must carry exactly this many rows to be complete.
const ExpectedDunTotal = 73

// DefaultState is the jurisdiction all seats belong to.
const DefaultState = "Sabah"

// Sentinels for geography rows whose parlimen cannot be resolved.
const (
	UnknownParlimenCode = "parlimen_unknown"
	UnknownParlimenName = "Parlimen Tidak Diketahui"
	UnknownParty        = "Tidak diketahui"
)

// Seat grains.
const (
	ParlimenGrain Grain = "parlimen"
	DunGrain      Grain = "dun"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All override store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Attack-side target tiers (party of interest did not win the seat).
const (
	TierNear   TierLevel = "near"
	TierMedium TierLevel = "medium"
	TierFar    TierLevel = "far"
)

// Defend-side risk tiers (party of interest holds the seat).
const (
	TierHighRisk   TierLevel = "high_risk"
	TierMediumRisk TierLevel = "medium_risk"
	TierLowRisk    TierLevel = "low_risk"
)

// Recommended actions, in the priority order they are assigned.
// ActionReviewData always wins when any data-quality flag fired.
const (
	ActionReviewData    ActionCode = "review_data"
	ActionPersuasionGtv ActionCode = "persuasion_gotv"
	ActionDefendGotv    ActionCode = "defend_gotv"
	ActionMaintain      ActionCode = "maintain"
	ActionBaseBuilding  ActionCode = "base_building"
)

// Funnel stages.
const (
	BaseTag       ActionTag = "BASE"
	PersuasionTag ActionTag = "PERSUASION"
	GotvTag       ActionTag = "GOTV"
)

// Override import modes.
const (
	MergeOverrides   MergeMode = "merge"
	ReplaceOverrides MergeMode = "replace"
)

// Data-quality flags attached to SeatMetrics. All that apply are included;
// none suppresses another.
const (
	FlagTurnoutOutOfRange  = "turnout outside 0..1"
	FlagSpoiledOutOfRange  = "spoiled rate outside 0..0.10"
	FlagTotalExceedsValid  = "total vote exceeds valid votes"
	FlagTargetExceedsValid = "safe target exceeds valid votes"
	FlagVotersEstimated    = "registered voters estimated"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid override store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidGrains lists all valid seat grains.
var ValidGrains = map[Grain]struct{}{
	ParlimenGrain: {},
	DunGrain:      {},
}

// ActionTags maps a recommended action to the funnel stages it exercises.
func ActionTags(code ActionCode) []ActionTag {
	switch code {
	case ActionPersuasionGtv:
		return []ActionTag{PersuasionTag, GotvTag}
	case ActionDefendGotv:
		return []ActionTag{BaseTag, GotvTag}
	case ActionMaintain:
		return []ActionTag{BaseTag}
	case ActionBaseBuilding:
		return []ActionTag{BaseTag, PersuasionTag}
	default: // review_data
		return nil
	}
}
