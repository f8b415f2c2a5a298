package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/samber/do"
	"github.com/serroba/todo-ratelimit/internal/config"
	"github.com/serroba/todo-ratelimit/internal/container"
	"github.com/serroba/todo-ratelimit/internal/messaging"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnvFiles(); err != nil {
		log.Fatal(err)
	}

	opts := &container.Options{
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		KeyPrefix:      getEnv("KEY_PREFIX", "ratelimit"),
		StoreTimeoutMS: getEnvInt("STORE_TIMEOUT_MS", 1000),
		StatsTTLHours:  getEnvInt("STATS_TTL_HOURS", 24),
		StatsSink:      getEnv("STATS_SINK", "redis"),
	}

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.ConfigPackage(injector)
	container.RedisPackage(injector)
	container.ConsumerGroupPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)

	group, err := do.Invoke[*messaging.ConsumerGroup](injector)
	if err != nil {
		logger.Fatal("failed to create consumer group", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumer group", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return v
}
