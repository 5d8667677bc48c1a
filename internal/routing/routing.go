package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"vehicledb/pkg/handlers"
	"vehicledb/pkg/middleware"
	"vehicledb/pkg/session"
	"vehicledb/pkg/user"
	"vehicledb/pkg/vehicle"
)

const shutdownTimeout = 10 * time.Second

type Deps struct {
	Users      user.ServiceInterface
	Vehicles   vehicle.ServiceVehicle
	Sessions   session.Repository
	Secret     []byte
	SessionTTL time.Duration
	Logger     *slog.Logger
}

func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Panic(d.Logger))
	r.Use(middleware.AccessLog(d.Logger))

	api := r.PathPrefix("/v1").Subrouter()
	InitRoutes(api, d)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		if _, err := w.Write([]byte(`{"error":"not_found"}`)); err != nil {
			d.Logger.Error("failed to write fallback JSON", slog.String("path", r.URL.Path), slog.Any("error", err))
		}
	})
	return r
}

func InitRoutes(api *mux.Router, d Deps) {
	requireAuth := middleware.RequireAuth(d.Secret, d.Sessions, d.Logger)

	userHandler := handlers.NewUserHandler(d.Users, d.Secret, d.SessionTTL, d.Logger)
	vehicleHandler := handlers.NewVehicleHandler(d.Vehicles, d.Logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	usersRouter := api.PathPrefix("/users").Subrouter()
	sessionRouter := api.PathPrefix("/session").Subrouter()
	vehiclesRouter := api.PathPrefix("/vehicles").Subrouter()
	vehiclesRouter.Use(requireAuth)

	/* user routers */
	usersRouter.HandleFunc("/", userHandler.CreateUser).Methods("POST").Name("create-user")

	/* session routers */
	sessionRouter.Handle("", requireAuth(http.HandlerFunc(userHandler.ValidateSession))).Methods("GET").Name("session")
	sessionRouter.HandleFunc("", userHandler.CreateSession).Methods("POST")
	sessionRouter.HandleFunc("", userHandler.DeleteSession).Methods("DELETE")

	/* vehicle routers */
	vehiclesRouter.HandleFunc("/", vehicleHandler.ListVehicles).Methods("GET").Name("vehicles")
	vehiclesRouter.HandleFunc("/", vehicleHandler.CreateVehicle).Methods("POST")
	vehiclesRouter.HandleFunc("/{vehicleId}", vehicleHandler.GetVehicle).Methods("GET")
	vehiclesRouter.HandleFunc("/{vehicleId}", vehicleHandler.DeleteVehicle).Methods("DELETE")
}

// WithCORS lets the listed frontend origins call the API with cookies.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(h)
}

// StartServer serves until ctx is cancelled, then drains in-flight requests.
func StartServer(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", "addr", fmt.Sprintf("http://%s", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
