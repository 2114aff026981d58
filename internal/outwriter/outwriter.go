// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/assiskamu/formula-menang/internal/contract"
	"github.com/assiskamu/formula-menang/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeats prints seat metric rows using the configured output format.
func (ow *OutWriter) WriteSeats(metrics []schema.SeatMetrics, cfg *contract.Config, duration time.Duration) error {
	return WriteSeatResults(metrics, cfg, duration)
}

// WriteBaseline prints the winners-table integrity report using the
// configured output format.
func (ow *OutWriter) WriteBaseline(validation schema.BaselineValidation, cfg *contract.Config) error {
	return WriteBaselineReport(validation, cfg)
}

// WriteMetrics prints the KPI definitions using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return PrintKpiDefinitions(cfg)
}
