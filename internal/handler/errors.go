package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/meeting-room-booking/internal/model"
    "github.com/iliyamo/meeting-room-booking/internal/repository"
    "github.com/iliyamo/meeting-room-booking/internal/service"
)

// conflictResp names the colliding booking without its contact details.
type conflictResp struct {
    Name      string `json:"name"`
    Date      string `json:"date"`
    StartTime string `json:"start_time"`
    EndTime   string `json:"end_time"`
}

func newConflictResp(b model.Booking) conflictResp {
    return conflictResp{Name: b.Name, Date: b.DateString(), StartTime: b.Start.String(), EndTime: b.End.String()}
}

// writeServiceError maps booking service errors to HTTP responses.
func writeServiceError(c echo.Context, err error) error {
    var (
        verr *service.ValidationError
        cerr *service.ConflictError
    )
    switch {
    case errors.As(err, &verr):
        details := make([]fieldDetail, 0, len(verr.Errors))
        for _, fe := range verr.Errors {
            details = append(details, fieldDetail{Field: fe.Field, Code: fe.Code(), Message: fe.Message})
        }
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "validation failed", "details": details})
    case errors.As(err, &cerr):
        return c.JSON(http.StatusConflict, echo.Map{
            "error":    cerr.Error(),
            "conflict": newConflictResp(cerr.Existing),
        })
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case errors.Is(err, service.ErrStorageUnavailable):
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking storage unavailable, try again later"})
    case errors.Is(err, service.ErrStorageFailed):
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking could not be saved"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
