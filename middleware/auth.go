package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotel-pms/auth"
	"hotel-pms/logging"
	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

const (
	ImpersonationCookie = "pms-impersonation"

	profileKey       = "profile"
	assignmentsKey   = "assignments"
	impersonationKey = "impersonation"
	scopeKey         = "scope"
)

type SessionConfig struct {
	Verifier   *auth.SessionVerifier
	Access     *services.AccessService
	CookieName string
}

// Session authenticates the Supabase access token from the Authorization
// header or the session cookie and loads the caller's role assignments.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		claims, err := cfg.Verifier.Verify(sessionToken(c, cfg.CookieName))
		if err != nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		profile, err := cfg.Access.EnsureProfile(ctx, claims)
		if err != nil {
			logging.FromContext(ctx).Error("ensure profile failed", zap.Error(err))
			utils.AbortJSONError(c, http.StatusInternalServerError, "Could not load user profile")
			return
		}
		held, err := cfg.Access.Assignments(ctx, profile.ID)
		if err != nil {
			logging.FromContext(ctx).Error("load assignments failed", zap.Error(err))
			utils.AbortJSONError(c, http.StatusInternalServerError, "Could not load user roles")
			return
		}

		logger := logging.FromContext(ctx).With(zap.String("user_id", profile.ID.String()))
		if raw, err := c.Cookie(ImpersonationCookie); err == nil {
			if target := cfg.Access.VerifyImpersonation(profile.ID, held, raw); target != nil {
				c.Set(impersonationKey, target)
				logger = logger.With(zap.String("impersonating_role", string(target.Role)), zap.Stringer("impersonating_hotel", target.HotelID))
			}
		}
		c.Request = c.Request.WithContext(logging.WithLogger(ctx, logger))

		c.Set(profileKey, profile)
		c.Set(assignmentsKey, held)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return v
	}
	return ""
}

func ProfileFrom(c *gin.Context) models.Profile {
	v, _ := c.Get(profileKey)
	p, _ := v.(models.Profile)
	return p
}

func AssignmentsFrom(c *gin.Context) []auth.Assignment {
	v, _ := c.Get(assignmentsKey)
	a, _ := v.([]auth.Assignment)
	return a
}

// ImpersonationFrom returns the verified impersonation target, if any.
func ImpersonationFrom(c *gin.Context) *auth.Assignment {
	v, _ := c.Get(impersonationKey)
	a, _ := v.(*auth.Assignment)
	return a
}

func ScopeFrom(c *gin.Context) auth.Scope {
	v, _ := c.Get(scopeKey)
	s, _ := v.(auth.Scope)
	return s
}

func userID(c *gin.Context) uuid.UUID {
	return ProfileFrom(c).ID
}
