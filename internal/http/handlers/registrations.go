package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/porsenia/sportreg/internal/catalog"
	"github.com/porsenia/sportreg/internal/ledger"
	"github.com/porsenia/sportreg/internal/pricing"
	"github.com/porsenia/sportreg/internal/registration"
)

// Registrar is the slice of the ledger this handler consumes.
type Registrar interface {
	Get(ctx context.Context, id string) registration.Progress
	AddSelection(ctx context.Context, id string, sel registration.CartSelection) (registration.Progress, error)
	RemoveSelection(ctx context.Context, id string, key string) (registration.Progress, error)
	CompleteStep1(ctx context.Context, id string, selections []registration.CartSelection) (registration.Progress, error)
	AddEntry(ctx context.Context, id string, categoryID string, participants []registration.Participant, team *registration.Team) (registration.Progress, error)
	RemoveEntry(ctx context.Context, id string, categoryID string, entryNumber int) (registration.Progress, error)
	CompleteStep2(ctx context.Context, id string, entries []registration.CategoryEntry) (registration.Progress, error)
	CompleteStep3(ctx context.Context, id string, breakdown pricing.Breakdown, grandTotal int64) (registration.Progress, error)
	UpdateDocuments(ctx context.Context, id string, docs map[string]bool) (registration.Progress, error)
	Reset(ctx context.Context, id string) error
}

type RegistrationsHandler struct {
	led Registrar
}

func NewRegistrationsHandler(led Registrar) *RegistrationsHandler {
	return &RegistrationsHandler{led: led}
}

// Create opens a fresh registration session and hands back its id. Nothing is
// persisted until the first mutation; Get fails open to the empty default.
func (h *RegistrationsHandler) Create(ctx *gin.Context) {
	id := uuid.NewString()

	ctx.JSON(http.StatusCreated, gin.H{
		"id":       id,
		"progress": registration.NewProgress(),
	})
}

func (h *RegistrationsHandler) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	p := h.led.Get(ctx.Request.Context(), id)

	ctx.JSON(http.StatusOK, p)
}

type selectionRequest struct {
	SportID         string            `json:"sportId" binding:"required"`
	CategoryID      string            `json:"categoryId" binding:"required"`
	EducationLevel  string            `json:"educationLevel"`
	TechnicalParams map[string]string `json:"technicalParams"`
}

func (r selectionRequest) toDomain() registration.CartSelection {
	return registration.CartSelection{
		SportID:         r.SportID,
		CategoryID:      r.CategoryID,
		EducationLevel:  catalog.EducationLevel(r.EducationLevel),
		TechnicalParams: r.TechnicalParams,
	}
}

func (h *RegistrationsHandler) AddSelection(ctx *gin.Context) {
	id := ctx.Param("id")

	var req selectionRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.led.AddSelection(ctx.Request.Context(), id, req.toDomain())

	if err != nil {
		h.respondLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

func (h *RegistrationsHandler) RemoveSelection(ctx *gin.Context) {
	id := ctx.Param("id")
	key := ctx.Query("key")

	if key == "" {
		RespondBadRequest(ctx, "selection key is required", nil)
		return
	}

	p, err := h.led.RemoveSelection(ctx.Request.Context(), id, key)

	if err != nil {
		h.respondLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

type completeStep1Request struct {
	Selections []selectionRequest `json:"selections" binding:"dive"`
}

func (h *RegistrationsHandler) CompleteStep1(ctx *gin.Context) {
	id := ctx.Param("id")

	var req completeStep1Request

	if !BindJSON(ctx, &req) {
		return
	}

	// an empty body means "complete with what is already in the cart"
	selections := make([]registration.CartSelection, 0, len(req.Selections))
	for _, s := range req.Selections {
		selections = append(selections, s.toDomain())
	}

	if len(selections) == 0 {
		selections = h.led.Get(ctx.Request.Context(), id).Selections()
	}

	p, err := h.led.CompleteStep1(ctx.Request.Context(), id, selections)

	if err != nil {
		h.respondLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

type addEntryRequest struct {
	Participants []registration.Participant `json:"participants"`
	Team         *registration.Team         `json:"team"`
}

func (h *RegistrationsHandler) AddEntry(ctx *gin.Context) {
	id := ctx.Param("id")
	categoryID := ctx.Param("categoryId")

	var req addEntryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.led.AddEntry(ctx.Request.Context(), id, categoryID, req.Participants, req.Team)

	if err != nil {
		h.respondLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

func (h *RegistrationsHandler) RemoveEntry(ctx *gin.Context) {
	id := ctx.Param("id")
	categoryID := ctx.Param("categoryId")

	entryNumber, ok := intParam(ctx, "entryNumber")
	if !ok {
		return
	}

	p, err := h.led.RemoveEntry(ctx.Request.Context(), id, categoryID, entryNumber)

	if err != nil {
		h.respondLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

type completeStep2Request struct {
	CategoryEntries []registration.CategoryEntry `json:"categoryEntries"`
}

func (h *RegistrationsHandler) CompleteStep2(ctx *gin.Context) {
	id := ctx.Param("id")

	var req completeStep2Request

	if !BindJSON(ctx, &req) {
		return
	}

	entries := req.CategoryEntries

	// empty body: snapshot the entries built up through AddEntry
	if len(entries) == 0 {
		entries = h.led.Get(ctx.Request.Context(), id).CategoryEntries()
	}

	p, err := h.led.CompleteStep2(ctx.Request.Context(), id, entries)

	if err != nil {
		h.respondLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

// Summary recomputes the cost sheet from the stored entry buckets: always a
// pure function of current state, never a cached figure.
func (h *RegistrationsHandler) Summary(ctx *gin.Context) {
	id := ctx.Param("id")

	p := h.led.Get(ctx.Request.Context(), id)

	buckets := p.CategoryEntries()
	lines := make([]pricing.Line, 0, len(buckets))

	for _, ce := range buckets {
		lines = append(lines, pricing.Line{
			PricePerEntry: ce.PricePerEntry,
			Entries:       len(ce.Entries),
		})
	}

	grandTotal := pricing.GrandTotal(lines)

	ctx.JSON(http.StatusOK, gin.H{
		"totalEntries":        registration.TotalEntries(buckets),
		"grandTotal":          grandTotal,
		"grandTotalFormatted": pricing.FormatIDR(grandTotal),
	})
}

type completeStep3Request struct {
	Breakdown  pricing.Breakdown `json:"breakdown"`
	GrandTotal int64             `json:"grandTotal"`
}

func (h *RegistrationsHandler) CompleteStep3(ctx *gin.Context) {
	id := ctx.Param("id")

	var req completeStep3Request

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.led.CompleteStep3(ctx.Request.Context(), id, req.Breakdown, req.GrandTotal)

	if err != nil {
		h.respondLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

type updateDocumentsRequest struct {
	Documents map[string]bool `json:"documents" binding:"required"`
}

func (h *RegistrationsHandler) UpdateDocuments(ctx *gin.Context) {
	id := ctx.Param("id")

	var req updateDocumentsRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.led.UpdateDocuments(ctx.Request.Context(), id, req.Documents)

	if err != nil {
		h.respondLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *RegistrationsHandler) Reset(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := h.led.Reset(ctx.Request.Context(), id); err != nil {
		RespondInternal(ctx, "Could not reset registration")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// respondLedgerError maps ledger/domain errors onto the response taxonomy:
// duplicates are informational conflicts, validation rejections are
// recoverable 422s, empty step completions are caller bugs (400).
func (h *RegistrationsHandler) respondLedgerError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, registration.ErrDuplicateSelection):
		RespondConflict(ctx, "duplicate_selection", "This combination is already in the cart.")

	case errors.Is(err, registration.ErrUnknownSport),
		errors.Is(err, registration.ErrUnknownCategory):
		RespondNotFound(ctx, "Sport or category not found")

	case errors.Is(err, registration.ErrEntryNotFound):
		RespondNotFound(ctx, "Entry not found")

	case errors.Is(err, registration.ErrCategoryNotInSport):
		RespondRejection(ctx, "category_not_in_sport", "The category does not belong to the selected sport.")

	case errors.Is(err, registration.ErrEducationLevelRequired):
		RespondRejection(ctx, "education_level_required", "Choose an education level before adding the selection.")

	case errors.Is(err, registration.ErrMissingTechnicalParam):
		RespondRejection(ctx, "technical_param_required", "Every required technical parameter needs a selected option.")

	case errors.Is(err, registration.ErrInvalidParamOption):
		RespondRejection(ctx, "invalid_param_option", "Selected technical parameter option is not recognised.")

	case errors.Is(err, registration.ErrIncompleteParticipant):
		RespondRejection(ctx, "incomplete_participant", "Every participant field is required.")

	case errors.Is(err, registration.ErrParticipantCount):
		RespondRejection(ctx, "participant_count", "Participant count does not match the category type.")

	case errors.Is(err, registration.ErrTeamRequired),
		errors.Is(err, registration.ErrTeamIncomplete):
		RespondRejection(ctx, "incomplete_team", "Team name, manager contact, school and member identities are required.")

	case errors.Is(err, registration.ErrTeamTooSmall):
		RespondRejection(ctx, "team_too_small", "Team has fewer members than the category minimum.")

	case errors.Is(err, registration.ErrTeamTooLarge):
		RespondRejection(ctx, "team_too_large", "Team has more members than the category maximum.")

	case errors.Is(err, ledger.ErrEmptyStep1):
		RespondBadRequest(ctx, "Pick at least one sport before completing step 1", nil)

	case errors.Is(err, ledger.ErrEmptyStep2):
		RespondBadRequest(ctx, "Add at least one participant or team before completing step 2", nil)

	default:
		RespondInternal(ctx, "Could not update registration")
	}
}
