package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"checkout/entity"
)

func (s *Server) PostVerifyTicket(c echo.Context) error {
	var request struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&request); err != nil {
		return err
	}

	ticket, err := s.checkIn.VerifyByCode(c.Request().Context(), c.Param("event_id"), request.Code)

	var alreadyCheckedIn entity.AlreadyCheckedInError
	if errors.As(err, &alreadyCheckedIn) {
		return c.JSON(http.StatusConflict, map[string]any{
			"ticket":        ticket,
			"checked_in_at": alreadyCheckedIn.CheckedInAt,
			"message":       alreadyCheckedIn.Error(),
		})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	return c.JSON(http.StatusOK, ticket)
}

func (s *Server) PostCheckIn(c echo.Context) error {
	var request struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&request); err != nil {
		return err
	}

	eventID := c.Param("event_id")
	ctx := c.Request().Context()

	ticket, err := s.checkIn.VerifyByCode(ctx, eventID, request.Code)
	if err == nil {
		ticket, err = s.checkIn.CheckIn(ctx, ticket, eventID)
	}

	var alreadyCheckedIn entity.AlreadyCheckedInError
	if errors.As(err, &alreadyCheckedIn) {
		return c.JSON(http.StatusConflict, map[string]any{
			"ticket":        ticket,
			"checked_in_at": alreadyCheckedIn.CheckedInAt,
			"message":       alreadyCheckedIn.Error(),
		})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, ticket)
}
