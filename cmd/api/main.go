package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cafe-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/cafe-manager-api/infrastructure/docstore"
	"github.com/vfg2006/cafe-manager-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/cafe-manager-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/cafe-manager-api/internal/api"
	"github.com/vfg2006/cafe-manager-api/internal/config"
	"github.com/vfg2006/cafe-manager-api/internal/scheduler"
	"github.com/vfg2006/cafe-manager-api/internal/seed"
	"github.com/vfg2006/cafe-manager-api/internal/state"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/analyzing"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/expensing"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/inventorying"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/payrolling"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/reconciling"
	"github.com/vfg2006/cafe-manager-api/internal/usecases/selling"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	appState := state.New()

	// O document store alimenta o snapshot em memória; erro fatal de acesso
	// derruba a sessão inteira para a tela de remediação.
	store := docstore.NewPostgresStore(pgConn)
	if err := store.Start(ctx, func(err error) {
		logrus.WithError(err).Error("Acesso ao document store perdido")
		appState.Fail(err)
	}); err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar o document store")
	}

	if err := appState.Start(ctx, store); err != nil {
		logrus.WithError(err).Fatal("Erro ao assinar as coleções do document store")
	}

	if cfg.Seed.Enabled {
		if err := seed.IfEmpty(ctx, store); err != nil {
			logrus.WithError(err).Error("Erro ao carregar dados iniciais")
			appState.Fail(err)
		}
	}

	authenticator, err := authenticating.NewService(appState, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o serviço de autenticação")
	}

	geminiClient := geminiclient.NewClient(cfg)
	geminiIntegrator := gemini.New(cfg, geminiClient)

	reconcileService := reconciling.NewService(store, appState)
	inventoryService := inventorying.NewService(store, appState, reconcileService)
	expenseService := expensing.NewService(store, appState)
	staffService := payrolling.NewService(store, appState)
	salesService := selling.NewService(store, appState)
	analysisService := analyzing.NewService(store, geminiIntegrator)

	ledgerAuditService := scheduler.NewLedgerAuditService(store, cfg)
	if err := ledgerAuditService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da auditoria do razão")
	} else {
		logrus.Info("Agendador da auditoria do razão iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		appState,
		authenticator,
		reconcileService,
		inventoryService,
		expenseService,
		staffService,
		salesService,
		analysisService,
		ledgerAuditService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
