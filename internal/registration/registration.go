package registration

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/porsenia/sportreg/internal/catalog"
	"github.com/porsenia/sportreg/internal/pricing"
)

// SchemaVersion is written into every persisted progress document so a future
// edition can migrate old records instead of guessing their shape.
const SchemaVersion = 1

// User-correctable rejections. None of these ever corrupt stored state; the
// rejected operation is a no-op on the ledger.
var (
	ErrUnknownSport           = errors.New("unknown sport")
	ErrUnknownCategory        = errors.New("unknown category")
	ErrCategoryNotInSport     = errors.New("category does not belong to the sport")
	ErrEducationLevelRequired = errors.New("education level is required")
	ErrMissingTechnicalParam  = errors.New("required technical parameter not selected")
	ErrInvalidParamOption     = errors.New("technical parameter option not recognised")
	ErrDuplicateSelection     = errors.New("selection already in cart")
	ErrIncompleteParticipant  = errors.New("participant is missing required fields")
	ErrParticipantCount       = errors.New("wrong participant count for category type")
	ErrTeamRequired           = errors.New("team data is required for a beregu category")
	ErrTeamIncomplete         = errors.New("team is missing required fields")
	ErrTeamTooSmall           = errors.New("team has fewer members than the category minimum")
	ErrTeamTooLarge           = errors.New("team has more members than the category maximum")
	ErrEntryNotFound          = errors.New("entry not found")
)

// CartSelection is one step-1 choice: a (sport, category, education level,
// technical parameters) combination, pre-entry.
type CartSelection struct {
	SportID         string                 `json:"sportId"`
	CategoryID      string                 `json:"categoryId"`
	EducationLevel  catalog.EducationLevel `json:"educationLevel"`
	TechnicalParams map[string]string      `json:"technicalParams,omitempty"`
}

// Key is the dedup identity of a selection. Parameters are sorted by id so
// two maps with the same pairs always produce the same key.
func (s CartSelection) Key() string {
	parts := []string{s.SportID, s.CategoryID, string(s.EducationLevel)}

	paramIDs := make([]string, 0, len(s.TechnicalParams))
	for id := range s.TechnicalParams {
		paramIDs = append(paramIDs, id)
	}
	sort.Strings(paramIDs)

	for _, id := range paramIDs {
		parts = append(parts, id+"="+s.TechnicalParams[id])
	}

	return strings.Join(parts, "|")
}

// Validate checks a selection against the catalog: the sport and category
// must exist, the category must belong to that sport, the education level must
// be a known tier, and every required technical parameter for the
// (sport, category) pair must carry a declared option.
func (s CartSelection) Validate() error {
	if _, ok := catalog.SportByID(s.SportID); !ok {
		return ErrUnknownSport
	}

	if _, ok := catalog.CategoryByID(s.CategoryID); !ok {
		return ErrUnknownCategory
	}

	// a mismatched pair would resolve to an empty parameter set below and
	// sneak past the required-parameter check
	owner, ok := catalog.SportForCategory(s.CategoryID)

	if !ok || owner.ID != s.SportID {
		return ErrCategoryNotInSport
	}

	if s.EducationLevel == "" {
		return ErrEducationLevelRequired
	}

	if !catalog.ValidEducationLevel(s.EducationLevel) {
		return ErrEducationLevelRequired
	}

	for _, p := range catalog.TechnicalParameters(s.SportID, s.CategoryID) {
		chosen, ok := s.TechnicalParams[p.ID]

		if !ok || chosen == "" {
			if p.Required {
				return ErrMissingTechnicalParam
			}
			continue
		}

		if !p.ParameterOptionValid(chosen) {
			return ErrInvalidParamOption
		}
	}

	return nil
}

// Participant is one competitor. Every field is required for the entry to be
// accepted.
type Participant struct {
	Name       string `json:"name"`
	NationalID string `json:"nationalId"`
	BirthDate  string `json:"birthDate"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	School     string `json:"school"`
}

// Complete reports whether every required identity field is filled.
func (p Participant) Complete() bool {
	return p.Name != "" &&
		p.NationalID != "" &&
		p.BirthDate != "" &&
		p.Gender != "" &&
		p.Phone != "" &&
		p.Email != "" &&
		p.School != ""
}

// TeamMember needs only the minimum identity set.
type TeamMember struct {
	Name       string `json:"name"`
	NationalID string `json:"nationalId"`
	BirthDate  string `json:"birthDate"`
}

func (m TeamMember) Complete() bool {
	return m.Name != "" && m.NationalID != "" && m.BirthDate != ""
}

type Team struct {
	Name         string       `json:"name"`
	CategoryTag  string       `json:"categoryTag"`
	ManagerName  string       `json:"managerName"`
	ManagerPhone string       `json:"managerPhone"`
	School       string       `json:"school"`
	Members      []TeamMember `json:"members"`
}

func (t Team) complete() bool {
	return t.Name != "" &&
		t.CategoryTag != "" &&
		t.ManagerName != "" &&
		t.ManagerPhone != "" &&
		t.School != ""
}

// Entry is one concrete competitive unit: a single, a pair, or a team,
// depending on the category type. EntryNumber is 1-based and dense; removal
// renumbers the survivors so a gap never persists.
type Entry struct {
	EntryNumber  int           `json:"entryNumber"`
	Participants []Participant `json:"participants,omitempty"`
	Team         *Team         `json:"team,omitempty"`
}

// CategoryEntry is the step-2 bucket for one distinct (sport, category) pair
// from the cart. Education-level and technical-parameter variants of the same
// category collapse onto the same bucket; entries are owned exclusively by it.
type CategoryEntry struct {
	SportID       string  `json:"sportId"`
	CategoryID    string  `json:"categoryId"`
	PricePerEntry int64   `json:"pricePerEntry"`
	Entries       []Entry `json:"entries"`
}

// Step payloads keep each step's data behind its completion flag instead of
// one shape-shifting record.

type Step1Data struct {
	SelectedSports []CartSelection `json:"selectedSports"`
	CompletedAt    time.Time       `json:"completedAt,omitzero"`
}

type Step2Data struct {
	CategoryEntries []CategoryEntry `json:"categoryEntries"`
	TotalEntries    int             `json:"totalEntries"`
	CompletedAt     time.Time       `json:"completedAt,omitzero"`
}

type Step3Data struct {
	Breakdown   *pricing.Breakdown `json:"breakdown,omitempty"`
	GrandTotal  int64              `json:"grandTotal"`
	Documents   map[string]bool    `json:"documents,omitempty"`
	SubmittedAt time.Time          `json:"submittedAt,omitzero"`
}

// Progress is the whole persisted aggregate for one registration session.
// Completion flags are monotonic under normal navigation; only Reset clears
// them.
type Progress struct {
	SchemaVersion int        `json:"schemaVersion"`
	Step1Complete bool       `json:"step1Complete"`
	Step2Complete bool       `json:"step2Complete"`
	Step3Complete bool       `json:"step3Complete"`
	Step1Data     *Step1Data `json:"step1Data,omitempty"`
	Step2Data     *Step2Data `json:"step2Data,omitempty"`
	Step3Data     *Step3Data `json:"step3Data,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt,omitzero"`
}

// NewProgress is the all-false, empty-payload default a fresh session gets.
func NewProgress() Progress {
	return Progress{SchemaVersion: SchemaVersion}
}

// Selections returns the current cart, empty when step 1 has no data yet.
func (p Progress) Selections() []CartSelection {
	if p.Step1Data == nil {
		return nil
	}

	return p.Step1Data.SelectedSports
}

// CategoryEntries returns the current step-2 buckets, empty when none exist.
func (p Progress) CategoryEntries() []CategoryEntry {
	if p.Step2Data == nil {
		return nil
	}

	return p.Step2Data.CategoryEntries
}
