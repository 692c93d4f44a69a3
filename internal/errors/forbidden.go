package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ForbiddenReason represents machine-readable reason codes for 403 errors.
type ForbiddenReason string

const (
	// ReasonMembersOnly marks endpoints restricted to activated members.
	ReasonMembersOnly ForbiddenReason = "members_only"
)

// ForbiddenError represents a standardized 403 Forbidden response.
type ForbiddenError struct {
	Error     string                 `json:"error"`             // Technical error message (for logs)
	UIMessage string                 `json:"uiMessage"`         // User-friendly message (for UI display)
	Reason    ForbiddenReason        `json:"reason"`            // Machine-readable reason code
	Details   map[string]interface{} `json:"details,omitempty"` // Optional context data
}

// AbortWithForbidden sends a 403 response with the ForbiddenError and aborts the request.
func AbortWithForbidden(c *gin.Context, err *ForbiddenError) {
	c.AbortWithStatusJSON(http.StatusForbidden, err)
}

// MembersOnly creates a ForbiddenError for endpoints gated on membership.
func MembersOnly(feature string) *ForbiddenError {
	return &ForbiddenError{
		Error:     "Feature '" + feature + "' is restricted to members",
		UIMessage: "This feature is available to members only. Activate a membership to unlock it.",
		Reason:    ReasonMembersOnly,
		Details: map[string]interface{}{
			"feature": feature,
		},
	}
}
