// Package wire provides dependency injection for the chores client.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/ramitsuri/chores-client-sub000/internal/adapters/notify"
	"github.com/ramitsuri/chores-client-sub000/internal/adapters/prefs"
	"github.com/ramitsuri/chores-client-sub000/internal/adapters/remote"
	"github.com/ramitsuri/chores-client-sub000/internal/adapters/sqlite"
	"github.com/ramitsuri/chores-client-sub000/internal/app"
	"github.com/ramitsuri/chores-client-sub000/internal/config"
	"github.com/ramitsuri/chores-client-sub000/internal/db"
	"github.com/ramitsuri/chores-client-sub000/internal/ports/primary"
)

var (
	cfg               *config.Config
	alarmHandler      primary.AlarmHandler
	scheduler         primary.ReminderScheduler
	syncService       primary.SyncService
	assignmentService primary.AssignmentService
	once              sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// AlarmHandler returns the singleton AlarmHandler instance.
func AlarmHandler() primary.AlarmHandler {
	once.Do(initServices)
	return alarmHandler
}

// Scheduler returns the singleton ReminderScheduler instance.
func Scheduler() primary.ReminderScheduler {
	once.Do(initServices)
	return scheduler
}

// SyncService returns the singleton SyncService instance.
func SyncService() primary.SyncService {
	once.Do(initServices)
	return syncService
}

// AssignmentService returns the singleton AssignmentService instance.
func AssignmentService() primary.AssignmentService {
	once.Do(initServices)
	return assignmentService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	configDir, err := config.DefaultConfigDir()
	if err != nil {
		log.Fatalf("failed to locate config directory: %v", err)
	}
	cfg, err = config.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v\nHint: run `chores init` first", err)
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Secondary adapters
	reminderRepo := sqlite.NewReminderAssignmentRepository(database)
	assignmentRepo := sqlite.NewTaskAssignmentRepository(database)
	apiClient := remote.NewClient(cfg.ServerURL, cfg.APIKey, logger)
	platform := notify.NewConsoleNotifier(os.Stdout)
	preferences := prefs.NewConfigPreferences(cfg)

	// Services (primary port implementations)
	alarmHandler = app.NewAlarmService(reminderRepo, assignmentRepo, platform, logger)
	scheduler = app.NewSchedulerService(assignmentRepo, alarmHandler, preferences, logger)
	syncService = app.NewSyncService(assignmentRepo, apiClient, logger)
	assignmentService = app.NewAssignmentService(assignmentRepo, alarmHandler, logger)
}
