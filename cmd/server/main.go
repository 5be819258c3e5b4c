package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/remiges-tech/checkwriter/config"
	"github.com/remiges-tech/checkwriter/internal/webservices/checks"
	"github.com/remiges-tech/checkwriter/logger"
	"github.com/remiges-tech/checkwriter/metrics"
	"github.com/remiges-tech/checkwriter/router"
	"github.com/remiges-tech/checkwriter/service"
	"github.com/remiges-tech/checkwriter/store"
)

type AppConfig struct {
	AppServerPort   int    `json:"app_server_port"`
	RedisAddr       string `json:"redis_addr"`
	DraftTTLSeconds int    `json:"draft_ttl_seconds"`
	TimeoutSeconds  int    `json:"request_timeout_seconds"`
	LogPriority     string `json:"log_priority"`
	GinMode         string `json:"gin_mode"`
}

func main() {
	configSystem := flag.String("configSource", "file", "The configuration system to use (file or rigel)")
	configFilePath := flag.String("configFile", "./config.json", "The path to the configuration file")
	etcdEndpoints := flag.String("etcdEndpoints", "localhost:2379", "Comma-separated list of etcd endpoints")
	rigelApp := flag.String("app", "checkwriter", "The rigel application name")
	rigelModule := flag.String("module", "server", "The rigel module name")
	rigelVersion := flag.Int("version", 1, "The rigel schema version")
	rigelConfigName := flag.String("configName", "dev", "The name of the rigel configuration")
	flag.Parse()

	src, err := config.NewSource(config.SourceOptions{
		System:        *configSystem,
		FilePath:      *configFilePath,
		EtcdEndpoints: *etcdEndpoints,
		App:           *rigelApp,
		Module:        *rigelModule,
		Version:       *rigelVersion,
		ConfigName:    *rigelConfigName,
	})
	if err != nil {
		log.Fatalf("Error creating config source: %v", err)
	}

	var appConfig AppConfig
	if err := config.Load(src, &appConfig); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := run(src, appConfig); err != nil {
		log.Fatalf("checkwriter: %v", err)
	}
}

func run(src config.Config, appConfig AppConfig) error {
	// logger
	priority, err := logger.ParsePriority(appConfig.LogPriority)
	if err != nil {
		return err
	}
	l := logger.LoadLogger("checkwriter", os.Stdout, priority)

	// metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewPrometheusMetrics(registry)
	if err := checks.RegisterMetrics(m); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	// redis
	rdb := redis.NewClient(&redis.Options{Addr: appConfig.RedisAddr})
	defer rdb.Close()
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("connecting to redis at %s: %w", appConfig.RedisAddr, err)
	}
	drafts := store.NewDrafts(rdb, time.Duration(appConfig.DraftTTLSeconds)*time.Second, l)

	// router
	if appConfig.GinMode != "" {
		gin.SetMode(appConfig.GinMode)
	}
	r, err := router.NewGinRouter(l, m, time.Duration(appConfig.TimeoutSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("creating router: %w", err)
	}
	r.GET("/metrics", gin.WrapH(m.Handler()))

	s := service.NewService(r).
		WithConfig(src).
		WithLogger(l).
		WithMetrics(m).
		WithDependency(checks.DepDrafts, drafts)
	if err := checks.RegisterHandlers(s); err != nil {
		return fmt.Errorf("registering handlers: %w", err)
	}

	// serve until interrupted
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", appConfig.AppServerPort),
		Handler: r,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		l.Info().LogActivity("Server starting", map[string]any{
			"addr":          srv.Addr,
			"draft_ttl":     drafts.TTL().String(),
			"config_source": fmt.Sprintf("%T", s.Config),
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	l.Info().LogActivity("Server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
