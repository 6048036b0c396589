package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careaxis/copilot/internal/adapters/directory"
	"github.com/careaxis/copilot/internal/adapters/providers/compliance"
	"github.com/careaxis/copilot/internal/adapters/session"
	"github.com/careaxis/copilot/internal/application/services"
	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	"github.com/careaxis/copilot/internal/infrastructure/clients/redis"
	"github.com/careaxis/copilot/internal/infrastructure/observability"
	"github.com/careaxis/copilot/internal/query/review"
	"github.com/careaxis/copilot/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize the session store
	var sessionStore providers.SessionStore
	switch cfg.Session.Backend {
	case "redis":
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis client: %v", err)
			log.Println("Falling back to in-memory session store")
			sessionStore = session.NewMemoryStore()
		} else {
			defer redisClient.Close()
			sessionStore = session.NewRedisStore(redisClient, cfg.Session.KeyPrefix)
			log.Println("Redis session store initialized successfully")
		}
	default:
		sessionStore = session.NewMemoryStore()
	}

	// Initialize the backend API client
	apiClient := careaxis.New(&cfg.API)
	log.Printf("API client targeting %s", cfg.API.BaseURL)

	sessionService := services.NewSessionService(sessionStore)

	complianceProvider, err := compliance.NewFromConfig(cfg.Compliance, apiClient, sessionService)
	if err != nil {
		log.Fatalf("Failed to initialize compliance provider: %v", err)
	}
	log.Printf("Compliance provider: %s", cfg.Compliance.Provider)

	// Fixture mode runs a scripted consultation so the full workflow is
	// exercised without a backend. The auth and workflow services are
	// otherwise driven by the UI layer embedding these packages.
	if cfg.Compliance.Provider == "fixture" {
		if err := runDemoConsultation(ctx, complianceProvider, sessionService); err != nil {
			log.Printf("Demo consultation failed: %v", err)
		}
	}

	patientDirectory := directory.NewAPIDirectory(apiClient, sessionService)

	// Keep the reports roster fresh in the background
	poller := services.NewPatientPoller(
		patientDirectory,
		cfg.Reports.PatientPollInterval,
		func(patients []entities.Patient) {
			observability.GetLogger().Debug().
				Int("count", len(patients)).
				Msg("patient roster refreshed")
		},
	)
	poller.Start(ctx)
	log.Printf("Patient poller started (refreshes every %s)", cfg.Reports.PatientPollInterval)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	poller.Stop()

	log.Println("Stopped")
}

// runDemoConsultation walks one consultation through the whole flow:
// demo session, patient selection, clinical input, analysis, review and
// acknowledgement. Transitions and the review verdict are logged.
func runDemoConsultation(ctx context.Context, provider providers.ComplianceProvider, sessions *services.SessionService) error {
	logger := observability.GetLogger()

	err := sessions.Establish(ctx, "demo-access-token", entities.AuthUser{
		ID:       "demo-doctor",
		FullName: "Dr. Demo",
	})
	if err != nil {
		return err
	}
	defer sessions.SignOut(ctx)

	transitions := make(chan services.WorkflowState, 8)
	workflow := services.NewConsultationWorkflow(provider, sessions, logNotifier{},
		services.WithTransitionHook(func(from, to services.WorkflowState) {
			logger.Info().
				Str("from", string(from)).
				Str("to", string(to)).
				Msg("consultation state changed")
			transitions <- to
		}))

	err = workflow.SelectPatient(entities.Patient{
		ID:       "demo-patient",
		HealthID: "CAX-DEMO",
		FullName: "Demo Patient",
	})
	if err != nil {
		return err
	}

	workflow.AddSymptom("fever")
	workflow.AddSymptom("cough")
	workflow.UpdateDraft(func(d *entities.ConsultationDraft) {
		d.DoctorDiagnosis = "Viral upper respiratory infection"
		d.Notes = "Scripted consultation exercising the full workflow."
	})

	if errs, err := workflow.Submit(ctx); err != nil {
		return err
	} else if len(errs) > 0 {
		return fmt.Errorf("clinical input rejected: %v", errs)
	}

	deadline := time.After(15 * time.Second)
	for workflow.State() != services.StateReviewingCompliance {
		select {
		case <-transitions:
		case <-deadline:
			return fmt.Errorf("analysis did not complete in time")
		}
	}

	model := review.Build(workflow.Result(), workflow.Justification())
	logger.Info().
		Str("level", model.LevelLabel).
		Int("match_score", model.MatchScore).
		Int("standards", len(model.Standards)).
		Int("referrals", len(model.Referrals)).
		Msg("compliance review ready")

	if model.NeedsJustification {
		workflow.SetJustification(
			"Documented rationale: prior response to this regimen and close follow-up arranged within 48 hours.")
	}
	return workflow.Acknowledge()
}

// logNotifier surfaces workflow notices on the process log in headless
// runs; the UI layer supplies its own notifier.
type logNotifier struct{}

func (logNotifier) Success(message, detail string) {
	observability.GetLogger().Info().Str("detail", detail).Msg(message)
}

func (logNotifier) Info(message string) {
	observability.GetLogger().Info().Msg(message)
}

func (logNotifier) Error(message, detail string) {
	observability.GetLogger().Error().Str("detail", detail).Msg(message)
}
