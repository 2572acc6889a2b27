// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"rental-booking/internal/adaptor"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/queue"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/cache"
	"rental-booking/pkg/database"
	"rental-booking/pkg/gateway"
	"rental-booking/pkg/middleware"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router *chi.Mux
}

// Wiring initializes the collaborators and wires all dependencies.
func Wiring(db database.PgxIface, repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	gw := gateway.NewPaystackClient(config.Paystack, logger)
	publisher := queue.NewPublisher(config.Queue.URL, logger)
	dedupe := cache.NewDedupe(cache.NewRedisClient(config.Redis, logger), 24*time.Hour, logger)

	service := usecase.NewService(repo, db, gw, publisher, dedupe, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router.
func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireBooking(r, handler.Booking, repo, logger)
	wirePayment(r, handler.Payment, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
