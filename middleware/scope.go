package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-pms/auth"
	"hotel-pms/models"
	"hotel-pms/utils"
)

const HotelHeader = "X-Hotel-ID"

// RequestedHotel parses the X-Hotel-ID header; ok is false when it is
// present but malformed.
func RequestedHotel(c *gin.Context) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.GetHeader(HotelHeader))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// RequireRoles resolves the request scope from the caller's assignments,
// admitting only the allowed roles. A verified impersonation whose role is
// allowed takes precedence.
func RequireRoles(allowed ...models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		if imp := ImpersonationFrom(c); imp != nil && slices.Contains(allowed, imp.Role) {
			c.Set(scopeKey, auth.Scope{UserID: userID(c), Role: imp.Role, HotelID: imp.HotelID, Impersonating: true})
			c.Next()
			return
		}

		hotel, ok := RequestedHotel(c)
		if !ok {
			utils.AbortJSONError(c, http.StatusBadRequest, "Invalid "+HotelHeader+" header")
			return
		}
		scope, err := auth.ResolveScope(userID(c), AssignmentsFrom(c), allowed, hotel)
		if err != nil {
			utils.AbortJSONError(c, http.StatusForbidden, "You do not have access to this area")
			return
		}
		c.Set(scopeKey, scope)
		c.Next()
	}
}

// RequireHotel rejects scopes without a hotel, which happens when a super
// admin calls a hotel route without naming one.
func RequireHotel() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ScopeFrom(c).HotelID == nil {
			utils.AbortJSONError(c, http.StatusBadRequest, HotelHeader+" header is required")
			return
		}
		c.Next()
	}
}
