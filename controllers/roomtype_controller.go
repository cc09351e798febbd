package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/filters"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type RoomTypeController struct {
	RoomTypeSvc *services.RoomTypeService
	Views       services.Revalidator
}

func NewRoomTypeController(svc *services.RoomTypeService, views services.Revalidator) *RoomTypeController {
	return &RoomTypeController{RoomTypeSvc: svc, Views: views}
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	hotelID := scopeHotel(c)
	if notModified(c, ctrl.Views, hotelID, services.ViewRoomTypes, "") {
		return
	}
	q := filters.RoomTypeQuery{
		Search: c.Query("q"),
		Sort:   filters.RoomTypeSort(c.Query("sort")),
		Page:   pageFrom(c),
	}
	items, err := ctrl.RoomTypeSvc.List(c.Request.Context(), hotelID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

func (ctrl *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rt, err := ctrl.RoomTypeSvc.Get(c.Request.Context(), scopeHotel(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var in services.RoomTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	rt, err := ctrl.RoomTypeSvc.Create(c.Request.Context(), scopeHotel(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.RoomTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	rt, err := ctrl.RoomTypeSvc.Update(c.Request.Context(), scopeHotel(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.RoomTypeSvc.Delete(c.Request.Context(), scopeHotel(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}
