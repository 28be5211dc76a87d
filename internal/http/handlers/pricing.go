package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/porsenia/sportreg/internal/catalog"
	"github.com/porsenia/sportreg/internal/pricing"
)

type PricingHandler struct{}

func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

// Counts carry no min binding: negative and zero are valid engine inputs that
// simply price to zero. "Must be positive" belongs to the form, not here.
type quoteRequest struct {
	SportID      string `json:"sportId" binding:"required"`
	Participants int    `json:"participants"`
	Officials    int    `json:"officials"`
}

func (h *PricingHandler) Quote(ctx *gin.Context) {
	var req quoteRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if _, ok := catalog.SportByID(req.SportID); !ok {
		RespondNotFound(ctx, "Sport not found")
		return
	}

	b := pricing.CalculateRegistrationCost(req.SportID, req.Participants, req.Officials)

	ctx.JSON(http.StatusOK, gin.H{
		"breakdown": b,
		"formatted": gin.H{
			"participantFee": pricing.FormatIDR(b.ParticipantFee),
			"officialFee":    pricing.FormatIDR(b.OfficialFee),
			"total":          pricing.FormatIDR(b.Total),
		},
	})
}
