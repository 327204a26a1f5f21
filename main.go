package main

import (
	"context"
	"errors"
	"folio/config"
	"folio/database"
	"folio/handlers"
	"folio/logger"
	"folio/session"
	"folio/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("Invalid configuration", zap.Error(err))
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer log.Sync()

	// Create context with timeout for initial connections
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.ConnectWithConfig(ctx, cfg.Database.URL, database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	}, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal("Invalid redis URL", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}

	sessions, err := session.NewStore(rdb, session.Config{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Issuer: cfg.Session.Issuer,
	})
	if err != nil {
		log.Fatal("Failed to create session store", zap.Error(err))
	}

	files, localDir, err := openStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to open document storage", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "apikey"},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.Register(r, handlers.Deps{
		Store:         db,
		Sessions:      sessions,
		Files:         files,
		Redis:         rdb,
		PublicAPIKey:  cfg.App.PublicAPIKey,
		ContactLimit:  cfg.RateLimit.ContactLimit,
		ContactWindow: cfg.RateLimit.ContactWindow,
		MaxUpload:     cfg.App.MaxUploadBytes,
	})
	if localDir != "" {
		r.Static(cfg.Storage.PublicPath, localDir)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}

// openStorage builds the configured CV store. For the local driver it
// also returns the directory to serve statically.
func openStorage(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (storage.Store, string, error) {
	if cfg.Driver == "s3" {
		bucket, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:          cfg.Endpoint,
			Region:            cfg.Region,
			Bucket:            cfg.Bucket,
			AccessKey:         cfg.AccessKey,
			SecretKey:         cfg.SecretKey,
			UsePathStyle:      cfg.UsePathStyle,
			PresignExpiration: cfg.PresignExpiration,
		}, log)
		if err != nil {
			return nil, "", err
		}
		if err := bucket.EnsureBucket(ctx); err != nil {
			return nil, "", err
		}
		return bucket, "", nil
	}

	local, err := storage.NewLocalStore(cfg.LocalDir, cfg.PublicPath, log)
	if err != nil {
		return nil, "", err
	}
	return local, local.Dir(), nil
}
