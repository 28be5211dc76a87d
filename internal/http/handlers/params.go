package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// intParam reads a positive integer path parameter, writing the 400 itself
// when it does not parse.
func intParam(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Param(name)

	n, err := strconv.Atoi(raw)

	if err != nil || n < 1 {
		RespondBadRequest(ctx, name+" must be a positive integer", nil)
		return 0, false
	}

	return n, true
}
