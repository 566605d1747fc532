package api

import (
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoActor = errs.Mark(errs.New("missing authenticated caller"), errs.ErrUnauthenticated)

func actorOrAbort(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return shared.Actor{}, false
	}
	return actor, true
}

func idParamOrAbort(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+what+" id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func abortBinding(c *gin.Context, err error) {
	var detail any
	if fields := reqdto.FieldErrors(err); len(fields) > 0 {
		detail = fields
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", detail)
}
