package bedstatus

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/geims/bedboard/internal/domain/ward"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public board routes on api and the write routes
// on admin. The admin group must already carry the admin guard.
func (h *Handler) RegisterRoutes(api *echo.Group, admin *echo.Group) {
	api.GET("/wards", h.ListWards)
	api.GET("/board", h.GetBoard)
	api.GET("/beds", h.ListBeds)
	api.GET("/beds/:id", h.GetBed)
	api.GET("/statuses", h.ListStatuses)

	admin.GET("/beds", h.ListAdminBeds)
	admin.PUT("/beds/:id", h.UpdateBed)
}

type bedListResponse struct {
	Beds     map[ward.BedID]*ResolvedBedView `json:"beds"`
	Degraded bool                            `json:"degraded"`
}

type bedDetailResponse struct {
	*ResolvedBedView
	Wards []string `json:"wards"`
}

type bedUpdateResponse struct {
	BedID ward.BedID `json:"bed_id"`
	BedRecord
}

func (h *Handler) ListWards(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Wards())
}

func (h *Handler) GetBoard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Board(c.Request().Context()))
}

func (h *Handler) ListBeds(c echo.Context) error {
	views, degraded := h.svc.Beds(c.Request().Context())
	return c.JSON(http.StatusOK, bedListResponse{Beds: views, Degraded: degraded})
}

func (h *Handler) GetBed(c echo.Context) error {
	id := bedIDParam(c)
	v, err := h.svc.Bed(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bedDetailResponse{ResolvedBedView: v, Wards: h.svc.BedWards(id)})
}

func (h *Handler) ListStatuses(c echo.Context) error {
	return c.JSON(http.StatusOK, Palette())
}

func (h *Handler) ListAdminBeds(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.AdminBedIDs())
}

func (h *Handler) UpdateBed(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	id := bedIDParam(c)
	rec, err := h.svc.Apply(c.Request().Context(), id, req.Status, req.Patient)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bedUpdateResponse{BedID: id, BedRecord: rec})
}

// bedIDParam reads the :id path parameter the same way for reads and writes.
func bedIDParam(c echo.Context) ward.BedID {
	return ward.BedID(strings.TrimSpace(c.Param("id")))
}

// httpError maps domain error kinds onto status codes.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidBed):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrBedNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "bed not found")
	case errors.Is(err, ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "bed status store unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
