package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/assiskamu/formula-menang/schema"
)

// ValidateWinners checks the structural integrity of the winners table:
// exact expected row count and no duplicate DUN codes. Violations are
// warnings, not failures; downstream components still build the dataset
// and surface the warnings to the operator.
func ValidateWinners(rows []schema.WinnersRow, sourceFile, party string) schema.BaselineValidation {
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.DunCode]++
	}

	var duplicates []string
	for code, count := range counts {
		if count > 1 {
			duplicates = append(duplicates, code)
		}
	}
	sort.Strings(duplicates)

	partyWins := 0
	for _, row := range rows {
		if strings.EqualFold(row.WinnerParty, party) {
			partyWins++
		}
	}

	var warnings []string
	if len(rows) != schema.ExpectedDunTotal {
		warnings = append(warnings, fmt.Sprintf(
			"incomplete data: %d DUN rows (expected %d)", len(rows), schema.ExpectedDunTotal))
	}
	if len(duplicates) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"duplicate DUN codes detected: %s", strings.Join(duplicates, ", ")))
	}

	return schema.BaselineValidation{
		TotalDun:          len(rows),
		DuplicateDunCodes: duplicates,
		Warnings:          warnings,
		SourceFile:        sourceFile,
		PartyWins:         partyWins,
		OtherWins:         len(rows) - partyWins,
	}
}
