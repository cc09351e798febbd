package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type RoomController struct {
	RoomSvc *services.RoomService
	Views   services.Revalidator
}

func NewRoomController(svc *services.RoomService, views services.Revalidator) *RoomController {
	return &RoomController{RoomSvc: svc, Views: views}
}

// GetRooms accepts ?status=available|occupied|maintenance.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	hotelID := scopeHotel(c)
	if notModified(c, ctrl.Views, hotelID, services.ViewRooms, "") {
		return
	}
	rooms, err := ctrl.RoomSvc.List(c.Request.Context(), hotelID, models.RoomStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.Get(c.Request.Context(), scopeHotel(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var in services.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	room, err := ctrl.RoomSvc.Create(c.Request.Context(), scopeHotel(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	room, err := ctrl.RoomSvc.Update(c.Request.Context(), scopeHotel(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// UpdateRoomStatus is the housekeeping action.
func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.RoomStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	room, err := ctrl.RoomSvc.UpdateStatus(c.Request.Context(), scopeHotel(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(c.Request.Context(), scopeHotel(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}
