package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/filters"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type GuestController struct {
	GuestSvc *services.GuestService
	Views    services.Revalidator
}

func NewGuestController(svc *services.GuestService, views services.Revalidator) *GuestController {
	return &GuestController{GuestSvc: svc, Views: views}
}

// GetGuests accepts ?q=, ?sort= and ?page=/page_size=.
func (ctrl *GuestController) GetGuests(c *gin.Context) {
	hotelID := scopeHotel(c)
	if notModified(c, ctrl.Views, hotelID, services.ViewGuests, "") {
		return
	}
	q := filters.GuestQuery{
		Search: c.Query("q"),
		Sort:   filters.GuestSort(c.Query("sort")),
		Page:   pageFrom(c),
	}
	guests, err := ctrl.GuestSvc.List(c.Request.Context(), hotelID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

// GetGuest returns the guest with reservation history.
func (ctrl *GuestController) GetGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := ctrl.GuestSvc.Get(c.Request.Context(), scopeHotel(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, detail)
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var in services.GuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	g, err := ctrl.GuestSvc.Create(c.Request.Context(), scopeHotel(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, g)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.GuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	g, err := ctrl.GuestSvc.Update(c.Request.Context(), scopeHotel(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, g)
}

func (ctrl *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.GuestSvc.Delete(c.Request.Context(), scopeHotel(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}
