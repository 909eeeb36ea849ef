package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"checkout/entity"
	"checkout/flow"
)

func (s *Server) PostBookingSession(c echo.Context) error {
	f, event, err := s.flows.StartSession(c.Request().Context(), c.Param("event_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"session_id": f.ID(),
		"event":      event,
		"status":     f.Status(),
	})
}

func (s *Server) GetBookingSession(c echo.Context) error {
	f, err := s.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f.Status())
}

func (s *Server) PostSelection(c echo.Context) error {
	var request struct {
		TicketTypeID string `json:"ticket_type_id"`
		Delta        int    `json:"delta"`
	}
	if err := c.Bind(&request); err != nil {
		return err
	}

	f, err := s.session(c)
	if err != nil {
		return err
	}

	if err := f.ChangeQuantity(request.TicketTypeID, request.Delta); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, f.Status())
}

func (s *Server) PostCoupon(c echo.Context) error {
	var request struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&request); err != nil {
		return err
	}

	f, err := s.session(c)
	if err != nil {
		return err
	}

	if err := f.ApplyCoupon(c.Request().Context(), request.Code); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, f.Status())
}

func (s *Server) PostContact(c echo.Context) error {
	var contact entity.ContactInformation
	if err := c.Bind(&contact); err != nil {
		return err
	}

	f, err := s.session(c)
	if err != nil {
		return err
	}

	if f.State() == flow.StateSelectingTickets {
		if err := f.ProceedToContact(); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if err := f.SubmitContact(contact); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, f.Status())
}

func (s *Server) PostBack(c echo.Context) error {
	f, err := s.session(c)
	if err != nil {
		return err
	}
	if err := f.Back(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, f.Status())
}

func (s *Server) PostConfirm(c echo.Context) error {
	var request struct {
		PaymentMethod entity.PaymentMethod `json:"payment_method"`
	}
	if err := c.Bind(&request); err != nil {
		return err
	}

	f, err := s.session(c)
	if err != nil {
		return err
	}

	err = f.Confirm(c.Request().Context(), request.PaymentMethod)
	if errors.Is(err, entity.ErrSubmissionInFlight) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if err != nil {
		// the flow keeps the failure details in its status; surface both
		return c.JSON(http.StatusBadGateway, f.Status())
	}
	return c.JSON(http.StatusOK, f.Status())
}

func (s *Server) PostVerifyPayment(c echo.Context) error {
	f, err := s.session(c)
	if err != nil {
		return err
	}

	status, err := f.VerifyPayment(c.Request().Context())
	if errors.Is(err, entity.ErrSessionExpired) {
		return c.JSON(http.StatusGone, f.Status())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"payment_status": status,
		"status":         f.Status(),
	})
}

func (s *Server) PostCancelPayment(c echo.Context) error {
	f, err := s.session(c)
	if err != nil {
		return err
	}
	if err := f.CancelPayment(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, f.Status())
}

func (s *Server) DeleteBookingSession(c echo.Context) error {
	err := s.flows.Remove(c.Param("session_id"))
	if errors.Is(err, flow.ErrSessionNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) session(c echo.Context) (*flow.BookingFlow, error) {
	f, err := s.flows.Get(c.Param("session_id"))
	if errors.Is(err, flow.ErrSessionNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return f, err
}
