package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotel-pms/services"
	"hotel-pms/utils"
)

type HotelController struct {
	HotelSvc *services.HotelService
	Views    services.Revalidator
}

func NewHotelController(svc *services.HotelService, views services.Revalidator) *HotelController {
	return &HotelController{HotelSvc: svc, Views: views}
}

func (ctrl *HotelController) GetHotels(c *gin.Context) {
	if notModified(c, ctrl.Views, uuid.Nil, services.ViewHotels, "") {
		return
	}
	hotels, err := ctrl.HotelSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func (ctrl *HotelController) GetHotel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h, err := ctrl.HotelSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h)
}

func (ctrl *HotelController) CreateHotel(c *gin.Context) {
	var in services.HotelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	h, err := ctrl.HotelSvc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, h)
}

func (ctrl *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.HotelInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	h, err := ctrl.HotelSvc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, h)
}

func (ctrl *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.HotelSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}
