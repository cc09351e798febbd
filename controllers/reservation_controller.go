package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-pms/filters"
	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
	Views          services.Revalidator
}

func NewReservationController(svc *services.ReservationService, views services.Revalidator) *ReservationController {
	return &ReservationController{ReservationSvc: svc, Views: views}
}

// GetReservations accepts ?q=, ?payment_status= (repeatable or comma
// separated), ?stay_status=, ?from=/to= on the check-in date, ?guest_id=,
// ?sort= and ?page=/page_size=.
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	hotelID := scopeHotel(c)

	from, err := utils.ParseOptionalDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := utils.ParseOptionalDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "to: "+err.Error())
		return
	}

	if notModified(c, ctrl.Views, hotelID, services.ViewReservations, "") {
		return
	}

	q := filters.ReservationQuery{
		Search:  c.Query("q"),
		From:    from,
		To:      to,
		GuestID: c.Query("guest_id"),
		Sort:    filters.ReservationSort(c.Query("sort")),
		Page:    pageFrom(c),
	}
	for _, v := range queryList(c, "payment_status") {
		q.PaymentStatuses = append(q.PaymentStatuses, models.PaymentStatus(v))
	}
	for _, v := range queryList(c, "stay_status") {
		q.StayStatuses = append(q.StayStatuses, models.StayStatus(v))
	}

	items, err := ctrl.ReservationSvc.List(c.Request.Context(), hotelID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := ctrl.ReservationSvc.Get(c.Request.Context(), scopeHotel(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var in services.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	r, err := ctrl.ReservationSvc.Create(c.Request.Context(), scopeHotel(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, r)
}

func (ctrl *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.ReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	r, err := ctrl.ReservationSvc.Update(c.Request.Context(), scopeHotel(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	r, err := ctrl.ReservationSvc.Cancel(c.Request.Context(), scopeHotel(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, r)
}

func (ctrl *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.ReservationSvc.Delete(c.Request.Context(), scopeHotel(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}
