package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewBookingHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book a court for one interval on one day. The booking starts pending.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		abortBinding(c, err)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), actor, in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Router /api/bookings/mine [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	views, err := h.q.ListMine(c.Request.Context(), actor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Get booking
// @Description Owners see their own bookings; admins see any.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c, "booking")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List all bookings
// @Description Admin listing, newest day first, with optional filters.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param court_id query string false "Court ID"
// @Param date query string false "Booking date (YYYY-MM-DD)"
// @Param status query string false "pending, confirmed or cancelled"
// @Param limit query int false "Max items (default 50, max 200)"
// @Param offset query int false "Items to skip"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) ListAll(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var q reqdto.BookingFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBinding(c, err)
		return
	}

	filter := queries.ReservationFilter{Limit: q.Limit, Offset: q.Offset}
	if q.CourtID != "" {
		courtID, err := uuid.Parse(q.CourtID)
		if err != nil {
			abortBinding(c, err)
			return
		}
		filter.CourtID = &courtID
	}
	if q.Date != "" {
		filter.Date = &q.Date
	}
	if q.Status != "" {
		filter.Status = &q.Status
	}

	views, err := h.q.ListAll(c.Request.Context(), actor, filter)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Update booking
// @Description Admin change of status, payment status or notes.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to change"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c, "booking")
	if !ok {
		return
	}
	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	view, err := h.cmds.UpdateStatus(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel booking
// @Description Owner or admin. Cancelling twice succeeds.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [put]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c, "booking")
	if !ok {
		return
	}
	view, err := h.cmds.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Delete booking
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := idParamOrAbort(c, "booking")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
