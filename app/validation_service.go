// Package app wires the validation pipeline together for the
// entrypoints: header alignment first, then full-table schema
// validation, then grouped metadata consistency.
package app

import (
	"context"

	"github.com/reedan88/ooicgsn-data-tools/domain/qc"
	"github.com/reedan88/ooicgsn-data-tools/domain/sample"
	"github.com/reedan88/ooicgsn-data-tools/internal"
	"github.com/reedan88/ooicgsn-data-tools/internal/discrete"
	"github.com/reedan88/ooicgsn-data-tools/internal/schema"
)

// ValidationService validates Discrete Sample Summary tables against the
// canonical schema. Construct once; Run is safe for concurrent use
// because the schemas are immutable.
type ValidationService struct {
	header  []string
	schema  *schema.Schema
	grouped *schema.GroupedSchema
	workers int
	log     *internal.Logger
}

// NewValidationService builds the service around the canonical catalog
// and the externally supplied accepted-cruise registry. Schema
// construction faults surface here, never during Run.
func NewValidationService(acceptedCruises []string, workers int, log *internal.Logger) (*ValidationService, error) {
	full, err := discrete.NewSchema(acceptedCruises)
	if err != nil {
		return nil, err
	}
	grouped, err := discrete.NewGroupedSchema()
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = internal.DefaultLogger
	}
	return &ValidationService{
		header:  discrete.Header(),
		schema:  full,
		grouped: grouped,
		workers: workers,
		log:     log,
	}, nil
}

// Run executes the whole pipeline and returns every finding in one
// deterministic list: header findings, then schema findings in catalog
// order, then grouped findings in first-seen partition order. It never
// errors on bad data; the error return is only for cancellation.
func (s *ValidationService) Run(ctx context.Context, t *sample.Table) ([]qc.Error, error) {
	findings := schema.AlignHeader(t.Header(), s.header)
	s.log.Debug("header alignment produced %d finding(s)", len(findings))

	var cellErrs []qc.Error
	if s.workers > 1 {
		var err error
		cellErrs, err = s.schema.ValidateConcurrent(ctx, t, s.workers)
		if err != nil {
			return nil, err
		}
	} else {
		cellErrs = s.schema.Validate(t)
	}
	findings = append(findings, cellErrs...)

	groupErrs := s.grouped.Validate(t)
	findings = append(findings, groupErrs...)

	s.log.Info("validated %d rows: %d finding(s)", t.Rows(), len(findings))
	return findings, nil
}
