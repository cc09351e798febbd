package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/services"
	"hotel-pms/utils"
)

// DashboardController serves the summaries. They are computed on every
// request.
type DashboardController struct {
	DashboardSvc *services.DashboardService
	Clock        services.Clock
}

func NewDashboardController(svc *services.DashboardService, clock services.Clock) *DashboardController {
	return &DashboardController{DashboardSvc: svc, Clock: clock}
}

func (ctrl *DashboardController) GetHotelSummary(c *gin.Context) {
	date, ok := dateParam(c, ctrl.Clock)
	if !ok {
		return
	}
	sum, err := ctrl.DashboardSvc.HotelSummary(c.Request.Context(), scopeHotel(c), date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, sum)
}

func (ctrl *DashboardController) GetPlatformSummary(c *gin.Context) {
	sum, err := ctrl.DashboardSvc.PlatformSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, sum)
}
