package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/internal/config"
	"github.com/vfg2006/cafe-manager-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LedgerAuditConfig representa a configuração do auditor diário do razão
type LedgerAuditConfig struct {
	CronSchedule string
	Tolerance    float64
	Enabled      bool
}

// LedgerAuditService percorre os resultados diários persistidos e loga os que
// violam a identidade de lucro. A auditoria é observacional: corridas entre
// produtores concorrentes são esperadas e nunca corrigidas automaticamente.
type LedgerAuditService struct {
	scheduler            *gocron.Scheduler
	config               LedgerAuditConfig
	store                docstore.Store
	auditRunning         bool
	auditMutex           sync.Mutex
	lastAuditStartedAt   time.Time
	lastAuditCompletedAt time.Time
}

// NewLedgerAuditService cria uma nova instância do auditor do razão
func NewLedgerAuditService(store docstore.Store, appConfig *config.Config) *LedgerAuditService {
	auditConfig := LedgerAuditConfig{
		CronSchedule: appConfig.LedgerAudit.CronSchedule,
		Tolerance:    appConfig.LedgerAudit.Tolerance,
		Enabled:      appConfig.LedgerAudit.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": auditConfig.CronSchedule,
		"tolerance":     auditConfig.Tolerance,
		"enabled":       auditConfig.Enabled,
	}).Info("Configuração do auditor do razão carregada")

	return &LedgerAuditService{
		scheduler:    scheduler,
		config:       auditConfig,
		store:        store,
		auditRunning: false,
	}
}

// Start inicia o agendador
func (s *LedgerAuditService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Auditoria do razão desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da auditoria do razão")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.AuditAll(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar auditoria do razão: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da auditoria do razão")
		s.scheduler.Stop()
	}()

	return nil
}

// AuditAll varre todos os resultados diários e loga as divergências. Devolve
// quantos registros violaram a identidade de lucro.
func (s *LedgerAuditService) AuditAll(ctx context.Context) int {
	s.auditMutex.Lock()
	if s.auditRunning {
		s.auditMutex.Unlock()
		logrus.Info("Auditoria do razão já em andamento, ignorando")
		return 0
	}
	startTime := time.Now()
	s.auditRunning = true
	s.lastAuditStartedAt = startTime
	s.auditMutex.Unlock()

	defer func() {
		s.auditMutex.Lock()
		s.auditRunning = false
		s.auditMutex.Unlock()
	}()

	logrus.Info("Iniciando auditoria do razão")

	snapshot, err := s.store.List(ctx, docstore.CollectionBusinessResults)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar resultados diários para auditoria")
		return 0
	}

	drifted := 0
	for key, raw := range snapshot {
		var result domain.DailyBusinessResult
		if err := json.Unmarshal(raw, &result); err != nil {
			logrus.WithError(err).WithField("key", key).Error("Resultado ilegível ignorado na auditoria")
			continue
		}

		if !result.ProfitIdentityHolds(s.config.Tolerance) {
			drifted++
			logrus.WithFields(logrus.Fields{
				"date":               result.Date,
				"netProfit":          result.NetProfit,
				"netRevenue":         result.NetRevenue,
				"costOfGoodsSold":    result.CostOfGoodsSold,
				"wasteCost":          result.WasteCost,
				"staffTotalCost":     result.StaffTotalCost,
				"operatingTotalCost": result.OperatingTotalCost,
			}).Warn("Resultado diário viola a identidade de lucro")
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"results":  len(snapshot),
		"drifted":  drifted,
	}).Info("Auditoria do razão concluída")

	s.auditMutex.Lock()
	s.lastAuditCompletedAt = time.Now()
	s.auditMutex.Unlock()
	return drifted
}

// Status devolve o estado atual do auditor para o endpoint de cron
func (s *LedgerAuditService) Status() map[string]interface{} {
	s.auditMutex.Lock()
	defer s.auditMutex.Unlock()

	status := map[string]interface{}{
		"enabled":       s.config.Enabled,
		"cron_schedule": s.config.CronSchedule,
		"running":       s.auditRunning,
	}

	if !s.lastAuditStartedAt.IsZero() {
		status["last_audit_started_at"] = s.lastAuditStartedAt.Format(time.RFC3339)
	}
	if !s.lastAuditCompletedAt.IsZero() {
		status["last_audit_completed_at"] = s.lastAuditCompletedAt.Format(time.RFC3339)
	}

	return status
}
