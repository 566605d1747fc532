package api

import (
	"net/http"

	"court-booking/internal/domain/slot"
	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CourtHandler struct {
	cmds     commands.CourtCommands
	q        queries.CourtQueries
	bookings queries.ReservationQueries
}

func NewCourtHandler(cmds commands.CourtCommands, q queries.CourtQueries, bookings queries.ReservationQueries) *CourtHandler {
	return &CourtHandler{cmds: cmds, q: q, bookings: bookings}
}

// @Summary List courts
// @Description Active courts. Admins may pass include_inactive=true.
// @Tags courts
// @Produce json
// @Param include_inactive query bool false "Admins only"
// @Success 200 {array} queries.CourtView
// @Router /api/courts [get]
func (h *CourtHandler) List(c *gin.Context) {
	activeOnly := true
	if c.Query("include_inactive") == "true" {
		if actor, ok := middleware.GetActor(c); ok && actor.IsAdmin() {
			activeOnly = false
		}
	}
	views, err := h.q.List(c.Request.Context(), activeOnly)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get court
// @Tags courts
// @Produce json
// @Param id path string true "Court ID"
// @Success 200 {object} queries.CourtView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/courts/{id} [get]
func (h *CourtHandler) Get(c *gin.Context) {
	id, ok := idParamOrAbort(c, "court")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Court availability
// @Description Booked intervals of one court on one day.
// @Tags courts
// @Produce json
// @Param id path string true "Court ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/courts/{id}/availability [get]
func (h *CourtHandler) Availability(c *gin.Context) {
	id, ok := idParamOrAbort(c, "court")
	if !ok {
		return
	}
	date, err := slot.ParseDate(c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}
	view, err := h.bookings.Availability(c.Request.Context(), id, date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Create court
// @Tags courts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCourtRequest true "Court"
// @Success 201 {object} queries.CourtView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/courts [post]
func (h *CourtHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/courts/"+view.ID.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary Update court
// @Tags courts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Court ID"
// @Param request body reqdto.UpdateCourtRequest true "Fields to change"
// @Success 200 {object} queries.CourtView
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/courts/{id} [put]
func (h *CourtHandler) Update(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c, "court")
	if !ok {
		return
	}
	var req reqdto.UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	view, err := h.cmds.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Delete court
// @Description Refused while the court has active bookings from today on.
// @Tags courts
// @Security BearerAuth
// @Param id path string true "Court ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/courts/{id} [delete]
func (h *CourtHandler) Delete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c, "court")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
