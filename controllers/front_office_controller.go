package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-pms/services"
	"hotel-pms/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type StayPayload struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	RoomID        uuid.UUID `json:"room_id" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type FrontOfficeController struct {
	StaySvc *services.StayService
	Views   services.Revalidator
	Clock   services.Clock
}

func NewFrontOfficeController(svc *services.StayService, views services.Revalidator, clock services.Clock) *FrontOfficeController {
	return &FrontOfficeController{StaySvc: svc, Views: views, Clock: clock}
}

// GetArrivals lists reservations due in on ?date= (default today) that have
// not checked in.
func (ctrl *FrontOfficeController) GetArrivals(c *gin.Context) {
	date, ok := dateParam(c, ctrl.Clock)
	if !ok {
		return
	}
	hotelID := scopeHotel(c)
	if notModified(c, ctrl.Views, hotelID, services.ViewFrontOffice, "arrivals|"+utils.FormatDate(date)) {
		return
	}
	items, err := ctrl.StaySvc.Arrivals(c.Request.Context(), hotelID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

// GetDepartures lists in-house reservations due out on ?date=.
func (ctrl *FrontOfficeController) GetDepartures(c *gin.Context) {
	date, ok := dateParam(c, ctrl.Clock)
	if !ok {
		return
	}
	hotelID := scopeHotel(c)
	if notModified(c, ctrl.Views, hotelID, services.ViewFrontOffice, "departures|"+utils.FormatDate(date)) {
		return
	}
	items, err := ctrl.StaySvc.Departures(c.Request.Context(), hotelID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

// GetInHouse is the guest log.
func (ctrl *FrontOfficeController) GetInHouse(c *gin.Context) {
	hotelID := scopeHotel(c)
	if notModified(c, ctrl.Views, hotelID, services.ViewFrontOffice, "in-house") {
		return
	}
	items, err := ctrl.StaySvc.InHouse(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

func (ctrl *FrontOfficeController) CheckIn(c *gin.Context) {
	var p StayPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	r, err := ctrl.StaySvc.CheckIn(c.Request.Context(), scopeHotel(c), p.ReservationID, p.RoomID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

func (ctrl *FrontOfficeController) CheckOut(c *gin.Context) {
	var p StayPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	r, err := ctrl.StaySvc.CheckOut(c.Request.Context(), scopeHotel(c), p.ReservationID, p.RoomID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}
