package main

import (
	"bufio"
	"context"
	"folio/admin"
	"folio/client"
	"folio/config"
	"folio/logger"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	godotenv.Load()
	cfg := config.LoadClient()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	defer log.Sync()

	cachePath := cfg.CacheFile
	if cachePath == "" {
		p, err := client.DefaultCachePath()
		if err != nil {
			log.Fatal("No cache directory available, set FOLIO_CACHE_FILE", zap.Error(err))
		}
		cachePath = p
	}
	cache := client.NewFileCache(cachePath)

	api := client.New(cfg,
		client.WithLogger(log.Named("client")),
		client.WithRateLimit(rate.Limit(10), 20),
		client.WithSessionCache(cache))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in := bufio.NewScanner(os.Stdin)
	notify := &terminalNotifier{in: in, out: os.Stdout}
	dash := admin.NewDashboard(api, cache, notify, log.Named("admin"))

	c := &console{dash: dash, in: in, out: os.Stdout}
	if err := c.run(ctx); err != nil {
		log.Error("console stopped", zap.Error(err))
		os.Exit(1)
	}
}
