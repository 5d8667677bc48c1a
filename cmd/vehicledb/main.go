package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"vehicledb/internal/config"
	"vehicledb/internal/database"
	"vehicledb/internal/logger"
	"vehicledb/internal/mongo"
	"vehicledb/internal/routing"
	"vehicledb/pkg/session"
	"vehicledb/pkg/user"
	"vehicledb/pkg/vehicle"
)

const sessionSweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	log := logger.Load(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("vehicledb", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := sessionRepo(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	vehicles, closeVehicles, err := vehicleRepo(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer closeVehicles()

	router := routing.NewRouter(routing.Deps{
		Users:      user.NewService(user.NewSQLRepo(db), sessions, cfg.SessionTTL),
		Vehicles:   vehicle.NewService(vehicles),
		Sessions:   sessions,
		Secret:     []byte(cfg.JWTSecret),
		SessionTTL: cfg.SessionTTL,
		Logger:     log,
	})

	return routing.StartServer(ctx, cfg.ListenAddr, routing.WithCORS(router, cfg.CORSOrigins), log)
}

func sessionRepo(ctx context.Context, cfg config.Server, db *sql.DB, log *slog.Logger) (session.Repository, error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, err
		}
		log.Info("sessions in redis", "addr", cfg.RedisAddr)
		return session.NewRedisSessionRepo(client), nil
	}

	repo := session.NewSQLSessionRepo(db)
	go sweepSessions(ctx, repo, log)
	return repo, nil
}

// sweepSessions deletes expired SQL sessions until ctx is done. Redis expires
// keys on its own.
func sweepSessions(ctx context.Context, repo *session.SQLSessionRepo, log *slog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Error("session sweep", "error", err)
				continue
			}
			if n > 0 {
				log.Debug("session sweep", "deleted", n)
			}
		}
	}
}

func vehicleRepo(ctx context.Context, cfg config.Server, db *sql.DB, log *slog.Logger) (vehicle.Repository, func(), error) {
	if cfg.MongoURI == "" {
		return vehicle.NewSQLRepo(db), func() {}, nil
	}

	client, mongoDB, err := mongo.LoadDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return nil, nil, err
	}
	log.Info("vehicles in mongo", "db", cfg.MongoDBName)
	return vehicle.NewMongoRepo(mongoDB), func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect", "error", err)
		}
	}, nil
}
