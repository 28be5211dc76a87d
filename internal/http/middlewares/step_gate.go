package middlewares

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/porsenia/sportreg/internal/ledger"
	"github.com/porsenia/sportreg/internal/registration"
)

// ProgressFunc loads the current progress snapshot for a registration id.
type ProgressFunc func(ctx context.Context, id string) registration.Progress

// StepGate denies access to a step whose prerequisite isn't complete. This is
// routing policy, not an error: the response names the step the client should
// return to, so it can redirect instead of failing.
func StepGate(progressOf ProgressFunc, step int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		p := progressOf(c.Request.Context(), id)

		ok, required := ledger.CanAccessStep(p, step)

		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "step_locked",
					"message": "Complete the prerequisite step first.",
					"details": gin.H{"requiredStep": required},
				},
			})
			return
		}

		c.Next()
	}
}
