package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/services"
	"hotel-pms/utils"
)

type StaffController struct {
	AccessSvc *services.AccessService
	Views     services.Revalidator
}

func NewStaffController(svc *services.AccessService, views services.Revalidator) *StaffController {
	return &StaffController{AccessSvc: svc, Views: views}
}

// GetStaff lists every assignment for super admins, or the scoped hotel's.
func (ctrl *StaffController) GetStaff(c *gin.Context) {
	hotelID := scopeHotel(c)
	if notModified(c, ctrl.Views, hotelID, services.ViewStaff, "") {
		return
	}
	items, err := ctrl.AccessSvc.ListStaff(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

func (ctrl *StaffController) GetRoles(c *gin.Context) {
	roles, err := ctrl.AccessSvc.Roles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, roles)
}

func (ctrl *StaffController) AssignRole(c *gin.Context) {
	var in services.AssignInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	ur, err := ctrl.AccessSvc.Assign(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, ur)
}

func (ctrl *StaffController) RevokeRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.AccessSvc.Revoke(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}

