package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/avocado-ai/avocado-web/config"
	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/backend"
	"github.com/avocado-ai/avocado-web/internal/oplog"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BackendProvider provides the upstream content API client
type BackendProvider interface {
	Backend() *backend.Client
}

// DashboardProvider provides the admin collections
type DashboardProvider interface {
	Dashboard() *admin.Dashboard
}

// AuthProvider provides the admin credential check
type AuthProvider interface {
	Auth() *admin.Authenticator
}

// OpLogProvider provides the operation log store
type OpLogProvider interface {
	OpLog() *oplog.Store
}

// EventBusProvider provides the in-process event bus
type EventBusProvider interface {
	Bus() EventBus.Bus
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	BackendProvider
	DashboardProvider
	AuthProvider
	OpLogProvider
	EventBusProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
