package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/roombooking/api"
	"github.com/Domenick1991/roombooking/config"
	"github.com/Domenick1991/roombooking/internal/service/admin"
	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc booking.BookingUseCase, adminSvc admin.AdminUseCase) error {
	router := NewRouter(bookingSvc, adminSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter assembles the gin engine with all handler groups mounted.
func NewRouter(bookingSvc booking.BookingUseCase, adminSvc admin.AdminUseCase) *gin.Engine {
	router := gin.Default()

	api.NewRoomHandler(bookingSvc).Register(router.Group("/rooms"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/bookings"))
	api.NewAdminHandler(adminSvc).Register(router.Group("/admin"))

	return router
}
