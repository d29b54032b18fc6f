package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tombiddulph/BushtarionScraper/internal/scraper"
	"github.com/tombiddulph/BushtarionScraper/pkg/announce"
	"github.com/tombiddulph/BushtarionScraper/pkg/checkpoint"
	"github.com/tombiddulph/BushtarionScraper/pkg/config"
	"github.com/tombiddulph/BushtarionScraper/pkg/fetch"
	"github.com/tombiddulph/BushtarionScraper/pkg/logger"
	"github.com/tombiddulph/BushtarionScraper/pkg/server"
	"github.com/tombiddulph/BushtarionScraper/pkg/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	once := flag.Bool("once", false, "run a single scrape and exit")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	l, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer l.Sync()

	l.Info("scraper service initializing", zap.String("env", cfg.Environment))

	// 3. Initialize MongoDB store
	mongoCtx, mongoCancel := context.WithTimeout(context.Background(), cfg.MongoDB.ConnectTimeout)
	defer mongoCancel()
	st, err := store.NewMongo(mongoCtx, store.MongoConfig{
		URI:      cfg.MongoDB.URI,
		Database: cfg.MongoDB.Database,
	}, l)
	if err != nil {
		l.Error("failed to connect to mongodb", err)
		os.Exit(1)
	}
	defer st.Close(context.Background())

	// 4. Initialize components
	fetcher := fetch.New(fetch.Config{
		URL:     cfg.Source.URL,
		Timeout: cfg.Source.Timeout,
	})

	var checkpoints checkpoint.Store
	if cfg.Checkpoint.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Checkpoint.RedisAddr})
		checkpoints = checkpoint.NewRedisStore(redisClient, cfg.Checkpoint.RedisKey)
	} else {
		checkpoints = checkpoint.NewFileStore(cfg.Checkpoint.Path)
	}

	var announcer announce.Announcer = announce.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		announcer = announce.NewKafkaAnnouncer(announce.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
	}
	defer announcer.Close()

	// 5. Create service
	svc := scraper.NewService(l, fetcher, st, checkpoints, announcer, cfg.Scraper.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := svc.Run(ctx); err != nil {
			l.Error("scrape run failed", err)
			os.Exit(1)
		}
		return
	}

	// 6. Start observability server
	obsServer := server.New(cfg.Server.Addr, l, st.Ping)
	go func() {
		if err := obsServer.Start(); err != nil {
			l.Error("observability server failed", err)
		}
	}()

	// 7. Start service
	l.Info("scraper service starting", zap.Duration("interval", cfg.Scraper.Interval))
	if err := svc.Start(ctx); err != nil {
		if err == context.Canceled {
			l.Info("scraper service stopping")
		} else {
			l.Error("scraper service failed", err)
		}
	}

	// Clean up observability server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	obsServer.Shutdown(shutdownCtx)
}
