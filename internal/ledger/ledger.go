package ledger

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/porsenia/sportreg/internal/catalog"
	"github.com/porsenia/sportreg/internal/observability"
	"github.com/porsenia/sportreg/internal/pricing"
	"github.com/porsenia/sportreg/internal/registration"
)

// ErrNotFound is what stores return when no document exists for an id. The
// ledger itself never surfaces it; a missing or unreadable record degrades to
// the empty default.
var ErrNotFound = errors.New("registration progress not found")

// ErrEmptyStep1 and ErrEmptyStep2 are checked preconditions on the step
// completion calls. Callers normally enforce "pick at least one" in the form,
// so hitting these indicates a caller bug rather than user input.
var (
	ErrEmptyStep1 = errors.New("step 1 requires at least one selection")
	ErrEmptyStep2 = errors.New("step 2 requires at least one entry")
)

// Store is the persistence port: one JSON-compatible document per
// registration id. Implementations live under internal/store.
type Store interface {
	Read(ctx context.Context, id string) (registration.Progress, error)
	Write(ctx context.Context, id string, p registration.Progress) error
	Clear(ctx context.Context, id string) error
}

const lockStripes = 64

// Ledger owns one registration session's three-step progress record. All
// catalog lookups are read-only; writes are serialized per registration id
// with striped locks, which is all the coordination this flow needs (one
// logical writer per session).
type Ledger struct {
	store Store
	log   *slog.Logger
	prom  *observability.Prom

	locks [lockStripes]sync.Mutex
}

func New(store Store, log *slog.Logger, prom *observability.Prom) *Ledger {
	return &Ledger{
		store: store,
		log:   log,
		prom:  prom,
	}
}

func (l *Ledger) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	return &l.locks[h.Sum32()%lockStripes]
}

// Get returns the current snapshot and never fails: a missing or corrupt
// document degrades to the all-false empty default.
func (l *Ledger) Get(ctx context.Context, id string) registration.Progress {
	p, err := l.store.Read(ctx, id)

	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.log.WarnContext(ctx, "progress read failed, serving empty default", "registration_id", id, "err", err)
		}

		return registration.NewProgress()
	}

	return p
}

// persist writes the document. Write faults are reported, not propagated: the
// caller still gets the updated in-memory state to display, and the store may
// simply be temporarily unavailable.
func (l *Ledger) persist(ctx context.Context, id string, p registration.Progress) {
	if err := l.store.Write(ctx, id, p); err != nil {
		l.log.ErrorContext(ctx, "progress write failed", "registration_id", id, "err", err)
	}
}

// mutate runs fn over the current snapshot under the id's lock and persists
// the result.
func (l *Ledger) mutate(ctx context.Context, id string, fn func(p *registration.Progress) error) (registration.Progress, error) {
	mu := l.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	p := l.Get(ctx, id)

	if err := fn(&p); err != nil {
		return p, err
	}

	p.UpdatedAt = time.Now().UTC()
	l.persist(ctx, id, p)

	return p, nil
}

// AddSelection validates one cart selection against the catalog and appends
// it to the step-1 cart. A duplicate combination is rejected as an
// informational no-op (ErrDuplicateSelection), not a validation failure.
func (l *Ledger) AddSelection(ctx context.Context, id string, sel registration.CartSelection) (registration.Progress, error) {
	if err := sel.Validate(); err != nil {
		l.prom.MarkSelectionReject(rejectReason(err))
		return l.Get(ctx, id), err
	}

	return l.mutate(ctx, id, func(p *registration.Progress) error {
		if p.Step1Data == nil {
			p.Step1Data = &registration.Step1Data{}
		}

		key := sel.Key()

		for _, existing := range p.Step1Data.SelectedSports {
			if existing.Key() == key {
				l.prom.MarkSelectionReject("duplicate")
				return registration.ErrDuplicateSelection
			}
		}

		p.Step1Data.SelectedSports = append(p.Step1Data.SelectedSports, sel)

		return nil
	})
}

// RemoveSelection drops the cart line with the given key; unknown keys are a
// no-op.
func (l *Ledger) RemoveSelection(ctx context.Context, id string, key string) (registration.Progress, error) {
	return l.mutate(ctx, id, func(p *registration.Progress) error {
		if p.Step1Data == nil {
			return nil
		}

		kept := p.Step1Data.SelectedSports[:0]

		for _, sel := range p.Step1Data.SelectedSports {
			if sel.Key() != key {
				kept = append(kept, sel)
			}
		}

		p.Step1Data.SelectedSports = kept

		return nil
	})
}

// CompleteStep1 records the final cart and flips step1Complete. Re-running it
// overwrites the payload (idempotent re-submission). Dedup happened at cart
// build time; this call does not re-validate.
func (l *Ledger) CompleteStep1(ctx context.Context, id string, selections []registration.CartSelection) (registration.Progress, error) {
	if len(selections) == 0 {
		return l.Get(ctx, id), ErrEmptyStep1
	}

	p, err := l.mutate(ctx, id, func(p *registration.Progress) error {
		p.Step1Data = &registration.Step1Data{
			SelectedSports: selections,
			CompletedAt:    time.Now().UTC(),
		}
		p.Step1Complete = true

		return nil
	})

	if err == nil {
		l.prom.MarkStepComplete(1)
	}

	return p, err
}

// AddEntry appends one validated entry to the step-2 bucket for categoryID,
// creating the buckets from the step-1 cart on first use. Entry numbers stay
// dense and 1-based.
func (l *Ledger) AddEntry(ctx context.Context, id string, categoryID string, participants []registration.Participant, team *registration.Team) (registration.Progress, error) {
	cat, ok := catalog.CategoryByID(categoryID)

	if !ok {
		return l.Get(ctx, id), registration.ErrUnknownCategory
	}

	return l.mutate(ctx, id, func(p *registration.Progress) error {
		l.ensureStep2Buckets(p)

		for i := range p.Step2Data.CategoryEntries {
			ce := &p.Step2Data.CategoryEntries[i]

			if ce.CategoryID == categoryID {
				if err := ce.AddEntry(cat, participants, team); err != nil {
					return err
				}

				p.Step2Data.TotalEntries = registration.TotalEntries(p.Step2Data.CategoryEntries)
				return nil
			}
		}

		return registration.ErrUnknownCategory
	})
}

// RemoveEntry deletes one entry and renumbers the bucket densely.
func (l *Ledger) RemoveEntry(ctx context.Context, id string, categoryID string, entryNumber int) (registration.Progress, error) {
	return l.mutate(ctx, id, func(p *registration.Progress) error {
		if p.Step2Data == nil {
			return registration.ErrEntryNotFound
		}

		for i := range p.Step2Data.CategoryEntries {
			ce := &p.Step2Data.CategoryEntries[i]

			if ce.CategoryID == categoryID {
				if err := ce.RemoveEntry(entryNumber); err != nil {
					return err
				}

				p.Step2Data.TotalEntries = registration.TotalEntries(p.Step2Data.CategoryEntries)
				return nil
			}
		}

		return registration.ErrEntryNotFound
	})
}

// ensureStep2Buckets expands the step-1 cart into category buckets if step 2
// has no data yet. One bucket per distinct (sport, category) pair.
func (l *Ledger) ensureStep2Buckets(p *registration.Progress) {
	if p.Step2Data != nil {
		return
	}

	p.Step2Data = &registration.Step2Data{
		CategoryEntries: registration.BuildCategoryEntries(p.Selections()),
	}
}

// CompleteStep2 snapshots the entry buckets, stores the entry total and flips
// step2Complete. Requires at least one entry across all categories.
func (l *Ledger) CompleteStep2(ctx context.Context, id string, entries []registration.CategoryEntry) (registration.Progress, error) {
	if registration.TotalEntries(entries) == 0 {
		return l.Get(ctx, id), ErrEmptyStep2
	}

	p, err := l.mutate(ctx, id, func(p *registration.Progress) error {
		p.Step2Data = &registration.Step2Data{
			CategoryEntries: entries,
			TotalEntries:    registration.TotalEntries(entries),
			CompletedAt:     time.Now().UTC(),
		}
		p.Step2Complete = true

		return nil
	})

	if err == nil {
		l.prom.MarkStepComplete(2)
	}

	return p, err
}

// CompleteStep3 stores the final cost breakdown and submission timestamp.
// This is the terminal "submitted" transition. Document-tracking state merged
// earlier via UpdateDocuments is preserved.
func (l *Ledger) CompleteStep3(ctx context.Context, id string, breakdown pricing.Breakdown, grandTotal int64) (registration.Progress, error) {
	p, err := l.mutate(ctx, id, func(p *registration.Progress) error {
		docs := map[string]bool(nil)

		if p.Step3Data != nil {
			docs = p.Step3Data.Documents
		}

		p.Step3Data = &registration.Step3Data{
			Breakdown:   &breakdown,
			GrandTotal:  grandTotal,
			Documents:   docs,
			SubmittedAt: time.Now().UTC(),
		}
		p.Step3Complete = true

		return nil
	})

	if err == nil {
		l.prom.MarkStepComplete(3)
	}

	return p, err
}

// UpdateDocuments merges partial document-tracking state into step 3 data
// without requiring step 3 to be complete; upload progress trickles in before
// the final submit.
func (l *Ledger) UpdateDocuments(ctx context.Context, id string, docs map[string]bool) (registration.Progress, error) {
	return l.mutate(ctx, id, func(p *registration.Progress) error {
		if p.Step3Data == nil {
			p.Step3Data = &registration.Step3Data{}
		}

		if p.Step3Data.Documents == nil {
			p.Step3Data.Documents = make(map[string]bool, len(docs))
		}

		for k, v := range docs {
			p.Step3Data.Documents[k] = v
		}

		return nil
	})
}

// Reset clears all persisted state back to the empty default.
func (l *Ledger) Reset(ctx context.Context, id string) error {
	mu := l.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	err := l.store.Clear(ctx, id)

	if err != nil && !errors.Is(err, ErrNotFound) {
		l.log.ErrorContext(ctx, "progress clear failed", "registration_id", id, "err", err)
		return err
	}

	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, registration.ErrEducationLevelRequired):
		return "education_level"
	case errors.Is(err, registration.ErrMissingTechnicalParam):
		return "missing_param"
	case errors.Is(err, registration.ErrInvalidParamOption):
		return "invalid_option"
	case errors.Is(err, registration.ErrUnknownSport), errors.Is(err, registration.ErrUnknownCategory):
		return "unknown_id"
	case errors.Is(err, registration.ErrCategoryNotInSport):
		return "category_mismatch"
	default:
		return "other"
	}
}
