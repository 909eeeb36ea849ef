package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"checkout/checkin"
	"checkout/db"
	"checkout/flow"
	"checkout/log"
)

type AuditTrail interface {
	Recent(ctx context.Context, n int64) ([]db.AuditEntry, error)
}

type Server struct {
	addr    string
	e       *echo.Echo
	flows   *flow.Manager
	checkIn checkin.Service
	audit   AuditTrail
}

func NewServer(
	addr string,
	flows *flow.Manager,
	checkIn checkin.Service,
	audit AuditTrail,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("checkout"))

	server := &Server{
		addr:    addr,
		e:       e,
		flows:   flows,
		checkIn: checkIn,
		audit:   audit,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/events/:event_id/booking-sessions", server.PostBookingSession)
	e.GET("/booking-sessions/:session_id", server.GetBookingSession)
	e.POST("/booking-sessions/:session_id/selection", server.PostSelection)
	e.POST("/booking-sessions/:session_id/coupon", server.PostCoupon)
	e.POST("/booking-sessions/:session_id/contact", server.PostContact)
	e.POST("/booking-sessions/:session_id/back", server.PostBack)
	e.POST("/booking-sessions/:session_id/confirm", server.PostConfirm)
	e.POST("/booking-sessions/:session_id/verify-payment", server.PostVerifyPayment)
	e.POST("/booking-sessions/:session_id/cancel-payment", server.PostCancelPayment)
	e.DELETE("/booking-sessions/:session_id", server.DeleteBookingSession)

	e.POST("/events/:event_id/check-in/verify", server.PostVerifyTicket)
	e.POST("/events/:event_id/check-in", server.PostCheckIn)

	e.GET("/ops/audit", server.GetOpsAudit)

	return server
}

// Handler exposes the routing tree, used by tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		if err := s.e.Shutdown(context.Background()); err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to shutdown HTTP server")
		}
	}()
	log.FromContext(ctx).WithField("addr", s.addr).Info("[HTTP] server listening")
	if err := s.e.Start(s.addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
