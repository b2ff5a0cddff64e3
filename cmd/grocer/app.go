package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/akinalp/grocery-planner/apiclient"
	"github.com/akinalp/grocery-planner/grocery"
	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg/localstore"
)

// app, tek bir komut çalıştırması boyunca yaşayan bağımlılıklar.
type app struct {
	configPath string
	verbose    bool

	cfg    Config
	logger *zap.Logger
	client *apiclient.Client
	store  *localstore.Store
	sync   *grocery.Synchronizer
}

// open, config'i okur ve client, fallback store ve synchronizer'ı kurar.
func (a *app) open() error {
	logger, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	timeout, _ := cfg.timeout()
	client, err := apiclient.New(cfg.APIURL, timeout)
	if err != nil {
		return err
	}
	client.SetSession(cfg.Session.authSession())
	client.OnSessionChange(a.persistSession)
	a.client = client

	fallbackPath, err := expandPath(cfg.FallbackPath)
	if err != nil {
		return err
	}
	store, err := localstore.Open(fallbackPath, cfg.FallbackKey)
	if err != nil {
		return fmt.Errorf("failed to open fallback store: %w", err)
	}
	a.store = store

	a.sync = grocery.New(grocery.Options{
		Remote:   client,
		Named:    client,
		Fallback: store,
		Auth:     client,
		Logger:   logger,
	})

	logger.Debug("grocer ready", zap.String("api_url", cfg.APIURL), zap.String("fallback", fallbackPath))
	return nil
}

// close, uçuştaki push'ları bekler ve kaynakları kapatır.
func (a *app) close() {
	if a.sync != nil {
		a.sync.Wait()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close fallback store", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// persistSession, login/refresh/logout sonrası token'ları config'e yazar.
func (a *app) persistSession(s *models.AuthSession) {
	a.cfg.Session = sessionConfig(s)
	if err := saveConfig(a.configPath, a.cfg); err != nil {
		a.logger.Warn("failed to persist session", zap.Error(err))
	}
}

// loadedSync, aktif listeyi yükleyip synchronizer'ı döner.
func (a *app) loadedSync(ctx context.Context) *grocery.Synchronizer {
	a.sync.LoadList(ctx)
	return a.sync
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	return config.Build()
}
