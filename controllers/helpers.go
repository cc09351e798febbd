package controllers

import (
	"context"
	"errors"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotel-pms/auth"
	"hotel-pms/filters"
	"hotel-pms/logging"
	"hotel-pms/middleware"
	"hotel-pms/services"
	"hotel-pms/utils"
)

// ---------------------------
// Errors
// ---------------------------

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		validation   *services.ValidationError
		precondition *services.PreconditionError
	)
	switch {
	case errors.As(err, &validation):
		utils.JSONFieldErrors(c, http.StatusBadRequest, validation.Error(), validation.Fields)
	case errors.As(err, &precondition):
		utils.JSONError(c, http.StatusConflict, precondition.Message)
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "You do not have access to this action")
	case errors.Is(err, context.Canceled):
		utils.JSONError(c, 499, "request cancelled")
	default:
		logging.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, err.Error())
}

// ---------------------------
// Params
// ---------------------------

func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func scopeHotel(c *gin.Context) uuid.UUID {
	return middleware.ScopeFrom(c).Hotel()
}

func pageFrom(c *gin.Context) filters.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return filters.Page{Page: page, PageSize: size}
}

// queryList reads a multi-value parameter given either repeated or comma
// separated.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// dateParam reads ?date=, defaulting to today on the hotel calendar.
func dateParam(c *gin.Context, clock services.Clock) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return clock.Today(), true
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date: "+err.Error())
		return time.Time{}, false
	}
	return d, true
}

// ---------------------------
// Revalidation
// ---------------------------

// notModified sets the view's ETag and answers 304 when the client already
// holds it. extra distinguishes variants of a view beyond the query string.
func notModified(c *gin.Context, views services.Revalidator, hotelID uuid.UUID, view services.View, extra string) bool {
	scope := middleware.ScopeFrom(c)
	h := fnv.New64a()
	_, _ = h.Write([]byte(string(scope.Role) + "|" + c.Request.URL.RawQuery + "|" + extra))

	tag := views.ETag(hotelID, view, strconv.FormatUint(h.Sum64(), 36))
	c.Header("ETag", tag)
	c.Header("Cache-Control", "private, no-cache")

	for _, candidate := range strings.Split(c.GetHeader("If-None-Match"), ",") {
		if strings.TrimSpace(candidate) == tag {
			c.Status(http.StatusNotModified)
			return true
		}
	}
	return false
}
