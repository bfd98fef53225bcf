// Package scheduler ejecuta los trabajos programados de la tienda: el cierre
// de caja diario, el refresco de tasas de cambio y la limpieza de tokens de
// sesión vencidos.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/reinierstore/store-api/internal/application/auth"
	"github.com/reinierstore/store-api/internal/application/catalog"
	"github.com/reinierstore/store-api/internal/application/sales"
	"github.com/reinierstore/store-api/pkg/config"
	"github.com/reinierstore/store-api/pkg/logger"
)

// Scheduler agrupa los trabajos cron de la aplicación.
type Scheduler struct {
	cron       *cron.Cron
	registerUC *sales.RegisterUseCase
	catalogUC  *catalog.CatalogUseCase
	authUC     *auth.AuthUseCase
	cfg        config.JobsConfig
	log        *logger.Logger
}

// New crea el planificador con los casos de uso que ejecutan cada trabajo.
func New(cfg config.JobsConfig, registerUC *sales.RegisterUseCase, catalogUC *catalog.CatalogUseCase, authUC *auth.AuthUseCase, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		registerUC: registerUC,
		catalogUC:  catalogUC,
		authUC:     authUC,
		cfg:        cfg,
		log:        log,
	}
}

// Start registra los trabajos y arranca el cron.
func (s *Scheduler) Start() {
	s.log.Info().Msg("iniciando planificador de trabajos")

	if _, err := s.cron.AddFunc(s.cfg.RegisterSnapshot, s.snapshotRegister); err != nil {
		s.log.Error().Err(err).Str("cron", s.cfg.RegisterSnapshot).Msg("no se pudo programar el cierre de caja")
	}
	if _, err := s.cron.AddFunc(s.cfg.RatesRefresh, s.refreshRates); err != nil {
		s.log.Error().Err(err).Str("cron", s.cfg.RatesRefresh).Msg("no se pudo programar el refresco de tasas")
	}
	if _, err := s.cron.AddFunc(s.cfg.TokenPurge, s.purgeTokens); err != nil {
		s.log.Error().Err(err).Str("cron", s.cfg.TokenPurge).Msg("no se pudo programar la limpieza de tokens")
	}

	s.cron.Start()
}

// Stop detiene el cron sin esperar los trabajos en curso.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("deteniendo planificador de trabajos")
	s.cron.Stop()
}

func (s *Scheduler) snapshotRegister() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.registerUC.Snapshot(ctx); err != nil {
		s.log.Error().Err(err).Msg("fallo el cierre de caja diario")
		return
	}
	s.log.Info().Msg("cierre de caja registrado")
}

func (s *Scheduler) refreshRates() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if err := s.catalogUC.RefreshRates(ctx); err != nil {
		s.log.Error().Err(err).Msg("fallo el refresco de tasas de cambio")
		return
	}
	s.log.Info().Msg("tasas de cambio actualizadas")
}

func (s *Scheduler) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	n, err := s.authUC.PurgeExpiredTokens(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("fallo la limpieza de tokens vencidos")
		return
	}
	s.log.Info().Int64("eliminados", n).Msg("tokens vencidos eliminados")
}
