package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/assiskamu/formula-menang/schema"
)

// Display labels for the tier buckets.
const (
	NearValue       = "Near"
	MediumValue     = "Medium"
	FarValue        = "Far"
	HighRiskValue   = "High Risk"
	MediumRiskValue = "Medium Risk"
	LowRiskValue    = "Low Risk"
)

// Color variables for console output.
var (
	UrgentColor  = color.New(color.FgRed, color.Bold)    // near targets and high-risk holds demand attention
	WatchColor   = color.New(color.FgYellow)             // standard caution, not bold
	SettledColor = color.New(color.FgCyan)               // informational / low-priority signal
	FlagColor    = color.New(color.FgMagenta, color.Bold)
)

// GetPlainTierLabel returns a plain text label for a tier. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainTierLabel(tier schema.TierLevel) string {
	switch tier {
	case schema.TierNear:
		return NearValue
	case schema.TierMedium:
		return MediumValue
	case schema.TierFar:
		return FarValue
	case schema.TierHighRisk:
		return HighRiskValue
	case schema.TierMediumRisk:
		return MediumRiskValue
	case schema.TierLowRisk:
		return LowRiskValue
	default:
		return string(tier)
	}
}

// GetColorTierLabel returns a colored text label for console output.
// It uses GetPlainTierLabel to determine the string, then applies the
// appropriate color.
func GetColorTierLabel(tier schema.TierLevel) string {
	text := GetPlainTierLabel(tier)

	switch tier {
	case schema.TierNear, schema.TierHighRisk:
		return UrgentColor.Sprint(text)
	case schema.TierMedium, schema.TierMediumRisk:
		return WatchColor.Sprint(text)
	default:
		return SettledColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output,
// based on the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateName truncates a seat name to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one
// character of content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
