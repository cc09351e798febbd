package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type AuthController struct {
	AccessSvc    *services.AccessService
	CookieSecure bool
}

func NewAuthController(svc *services.AccessService, cookieSecure bool) *AuthController {
	return &AuthController{AccessSvc: svc, CookieSecure: cookieSecure}
}

// GetSession returns the profile, assignments, effective scope and the home
// route for the caller.
func (ctrl *AuthController) GetSession(c *gin.Context) {
	hotel, ok := middleware.RequestedHotel(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid "+middleware.HotelHeader+" header")
		return
	}
	info, err := ctrl.AccessSvc.Session(c.Request.Context(), middleware.ProfileFrom(c), middleware.ImpersonationFrom(c), hotel)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, info)
}

// StartImpersonation lets a super admin act as a hotel role. The signed token
// travels in an HttpOnly cookie.
func (ctrl *AuthController) StartImpersonation(c *gin.Context) {
	var in services.ImpersonationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	profile := middleware.ProfileFrom(c)
	token, expires, err := ctrl.AccessSvc.StartImpersonation(c.Request.Context(), profile.ID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.ImpersonationCookie, token, int(time.Until(expires).Seconds()), "/", "", ctrl.CookieSecure, true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"hotel_id":   in.HotelID,
		"role":       in.Role,
		"expires_at": expires,
		"home_route": in.Role.HomeRoute(),
	})
}

func (ctrl *AuthController) StopImpersonation(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.ImpersonationCookie, "", -1, "/", "", ctrl.CookieSecure, true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"impersonating": false})
}
