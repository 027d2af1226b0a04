package dedupe

import (
	"fmt"

	"github.com/rs/zerolog"

	"photosift/internal/models"
)

// Pipeline runs validation, grouping, ranking and selection over a record
// set. After validation the stages are pure: any failure there is a
// programming defect, not an expected runtime condition.
type Pipeline struct {
	grouper *Grouper
	log     zerolog.Logger
}

// NewPipeline creates a Pipeline with the given tunables.
func NewPipeline(cfg Config, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		grouper: NewGrouper(cfg),
		log:     log,
	}
}

// Result holds the outcome of one pipeline run.
type Result struct {
	Classes   []*models.EquivalenceClass
	Decisions []models.SelectionDecision
	Rejected  []*models.PhotoRecord // structurally invalid records, excluded from grouping
}

// DuplicateSets returns the multi-record classes with their selection
// applied, in emission order.
func (r *Result) DuplicateSets() []*models.DuplicateSet {
	kept := make(map[string]bool, len(r.Decisions))
	for _, d := range r.Decisions {
		if d.Kept {
			kept[d.RecordID] = true
		}
	}

	var sets []*models.DuplicateSet
	for _, class := range r.Classes {
		if len(class.Records) < 2 {
			continue
		}
		set := &models.DuplicateSet{ClassID: class.ID}
		for _, rec := range Rank(class) {
			set.Photos = append(set.Photos, rec)
			if kept[rec.ID] {
				set.Keep = rec
			} else {
				set.Drop = append(set.Drop, rec)
			}
		}
		sets = append(sets, set)
	}
	return sets
}

// Run validates the input, then groups, ranks, and resolves it. Malformed
// records are rejected and logged rather than aborting the run, so one bad
// record cannot poison a class.
func (p *Pipeline) Run(records []*models.PhotoRecord) *Result {
	valid := make([]*models.PhotoRecord, 0, len(records))
	var rejected []*models.PhotoRecord

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if err := validate(r); err != nil {
			p.log.Warn().Err(err).Msg("rejecting malformed record")
			rejected = append(rejected, r)
			continue
		}
		if seen[r.ID] {
			p.log.Warn().Str("id", r.ID).Msg("rejecting record with duplicate id")
			rejected = append(rejected, r)
			continue
		}
		seen[r.ID] = true
		valid = append(valid, r)
	}

	classes := p.grouper.Group(valid)
	decisions := Resolve(classes)

	p.log.Info().
		Int("records", len(valid)).
		Int("rejected", len(rejected)).
		Int("classes", len(classes)).
		Msg("pipeline run complete")

	return &Result{
		Classes:   classes,
		Decisions: decisions,
		Rejected:  rejected,
	}
}

// validate checks a record for structural problems.
func validate(r *models.PhotoRecord) error {
	if r == nil {
		return fmt.Errorf("nil record")
	}
	if r.ID == "" {
		return fmt.Errorf("record %q has empty id", r.Path)
	}
	if r.SizeBytes < 0 {
		return fmt.Errorf("record %s has negative size %d", r.ID, r.SizeBytes)
	}
	return nil
}
