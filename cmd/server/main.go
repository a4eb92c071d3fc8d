package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/career-os/adapters/event"
	httpAdapter "github.com/khoahotran/career-os/adapters/http"
	"github.com/khoahotran/career-os/adapters/llm"
	"github.com/khoahotran/career-os/adapters/persistence"
	"github.com/khoahotran/career-os/internal/application/service"
	authUC "github.com/khoahotran/career-os/internal/application/usecase/auth"
	"github.com/khoahotran/career-os/internal/application/usecase/careercontext"
	"github.com/khoahotran/career-os/internal/application/usecase/generation"
	profileUC "github.com/khoahotran/career-os/internal/application/usecase/profile"
	"github.com/khoahotran/career-os/internal/application/usecase/record"
	usageUC "github.com/khoahotran/career-os/internal/application/usecase/usage"
	"github.com/khoahotran/career-os/internal/config"
	"github.com/khoahotran/career-os/internal/domain/education"
	"github.com/khoahotran/career-os/internal/domain/experience"
	"github.com/khoahotran/career-os/internal/domain/project"
	"github.com/khoahotran/career-os/internal/domain/skill"
	"github.com/khoahotran/career-os/pkg/apperror"
	"github.com/khoahotran/career-os/pkg/auth"
	"github.com/khoahotran/career-os/pkg/logger"
	"github.com/khoahotran/career-os/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Career OS API Server...", zap.String("env", cfg.App.Env))

	shutdownTracer, err := tracing.NewTracerProvider(cfg, appLogger, "career-os-api")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}

	// Infrastructure. The Postgres pool is opened on first use.
	connector := persistence.NewConnector(cfg, appLogger)

	var ledger service.UsageLedger = service.NopUsageLedger()
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	switch {
	case err != nil:
		appLogger.Warn("Redis unavailable, usage ledger disabled", zap.Error(err))
	case redisClient != nil:
		ledger = persistence.NewRedisUsageLedger(redisClient)
	}

	publisher, closePublisher := event.NewKafkaPublisher(cfg, appLogger)

	llmService, err := llm.NewLLMService(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init LLM adapter", err)
	}

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(connector, appLogger)
	experienceRepo := persistence.NewPostgresExperienceRepo(connector, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(connector, appLogger)
	projectRepo := persistence.NewPostgresProjectRepo(connector, appLogger)
	educationRepo := persistence.NewPostgresEducationRepo(connector, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	mapper := apperror.NewMapper(appLogger)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(cfg.Auth.OwnerPasswordHash, jwtSvc, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, publisher, appLogger)
	experienceUseCase := record.NewUseCase[experience.Experience, experience.Filter, experience.Patch](
		experienceRepo, experience.EntityName, func(e *experience.Experience) string { return e.ID }, publisher, appLogger)
	skillUseCase := record.NewUseCase[skill.Skill, skill.Filter, skill.Patch](
		skillRepo, skill.EntityName, func(s *skill.Skill) string { return s.ID }, publisher, appLogger)
	projectUseCase := record.NewUseCase[project.Project, project.Filter, project.Patch](
		projectRepo, project.EntityName, func(p *project.Project) string { return p.ID }, publisher, appLogger)
	educationUseCase := record.NewUseCase[education.Education, education.Filter, education.Patch](
		educationRepo, education.EntityName, func(e *education.Education) string { return e.ID }, publisher, appLogger)
	aggregator := careercontext.NewAggregator(profileRepo, experienceRepo, skillRepo, projectRepo, educationRepo, appLogger)
	generationUseCase := generation.NewUseCase(aggregator, llmService, ledger, publisher, appLogger)
	usageUseCase := usageUC.NewReportUseCase(ledger)

	// HTTP Handlers
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Auth:        httpAdapter.NewAuthHandler(loginUseCase),
		Profile:     httpAdapter.NewProfileHandler(profileUseCase),
		Experiences: httpAdapter.NewRecordHandler(experienceUseCase),
		Skills:      httpAdapter.NewRecordHandler(skillUseCase),
		Projects:    httpAdapter.NewRecordHandler(projectUseCase),
		Educations:  httpAdapter.NewRecordHandler(educationUseCase),
		Generation:  httpAdapter.NewGenerationHandler(generationUseCase),
		Usage:       httpAdapter.NewUsageHandler(usageUseCase),
	}, jwtSvc, mapper)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	if err := closePublisher(); err != nil {
		appLogger.Error("Failed to close Kafka producer", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Failed to close Redis client", err)
		}
	}
	connector.Close()
	if err := shutdownTracer(ctx); err != nil {
		appLogger.Error("Failed to shutdown tracer", err)
	}
	appLogger.Info("Server exited")
}
