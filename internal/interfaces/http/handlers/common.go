// Package handlers implements the HTTP endpoints: prediction, health,
// statistics, and corpus listings.
package handlers

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/errors"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/pkg/types/transit"
)

// errorResponse is the uniform error payload.  MatchStatus is always
// "error" so clients that only inspect match_status still see failures.
type errorResponse struct {
	Error       string `json:"error"`
	Code        string `json:"code"`
	Detail      string `json:"detail,omitempty"`
	MatchStatus string `json:"match_status"`
}

// renderError maps a typed error onto its HTTP status and writes the
// structured payload.  Untyped errors render as an internal failure without
// leaking their message.
func renderError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	resp := errorResponse{
		Error:       "internal server error",
		Code:        string(code),
		MatchStatus: string(transit.MatchStatusError),
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		resp.Error = appErr.Message
		resp.Detail = appErr.Detail
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(errors.HTTPStatusForCode(code), resp)
}
