package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/xiehuijie/my-track-expenses/internal/client"
	"github.com/xiehuijie/my-track-expenses/internal/config"
	"github.com/xiehuijie/my-track-expenses/internal/storage"
	"github.com/xiehuijie/my-track-expenses/internal/util"
)

func main() {
	// optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("MTE_CONFIG"))
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log := util.NewLogger(cfg.Log.Level)

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}

	manager := storage.NewManager(storage.Options{
		Engine: engine,
		Logger: log,
	})
	if err := client.Init(manager); err != nil {
		log.Fatalf("init storage: %v", err)
	}
	log.WithField("engine", cfg.Database.Engine).Info("expense store ready")

	// run until the surrounding app shell asks us to stop
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := client.Teardown(); err != nil {
		log.Errorf("teardown: %v", err)
	}
}

func buildEngine(cfg *config.Config) (storage.Engine, error) {
	if cfg.Database.Engine == "memory" {
		store, err := storage.NewFileBlobStore(cfg.Database.SnapshotDir)
		if err != nil {
			return nil, err
		}
		return storage.NewMemoryEngine(store, cfg.Database.SnapshotKey), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}
	return storage.NewFileEngine(cfg.Database.Path, cfg.Database.LogMode), nil
}
