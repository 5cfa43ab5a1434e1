package app

import (
	"context"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"

	"github.com/avocado-ai/avocado-web/config"
	"github.com/avocado-ai/avocado-web/internal/admin"
	"github.com/avocado-ai/avocado-web/internal/backend"
	"github.com/avocado-ai/avocado-web/internal/domain"
	"github.com/avocado-ai/avocado-web/internal/oplog"
)

// oplogNode is the snowflake node of this instance.
const oplogNode int64 = 1

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
	bus       EventBus.Bus
	client    *backend.Client
	dashboard *admin.Dashboard
	auth      *admin.Authenticator
	oplog     *oplog.Store
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ BackendProvider   = (*Application)(nil)
	_ DashboardProvider = (*Application)(nil)
	_ AuthProvider      = (*Application)(nil)
	_ OpLogProvider     = (*Application)(nil)
	_ EventBusProvider  = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Backend() *backend.Client {
	return a.client
}

func (a *Application) Dashboard() *admin.Dashboard {
	return a.dashboard
}

func (a *Application) Auth() *admin.Authenticator {
	return a.auth
}

func (a *Application) OpLog() *oplog.Store {
	return a.oplog
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// initLogger installs the global zap logger, teeing into a rotating file
// when enabled.
func initLogger(cfg *config.AppConfig) error {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return err
		}
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// Init sets up logging, storage, the backend client and the admin
// dashboard, then starts the background jobs.
func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := initLogger(cfg); err != nil {
		return errors.Wrap(err, "init logger")
	}

	if a.gormDB == nil {
		a.gormDB, err = getDatabase(cfg.Database, cfg.GetDataDir())
		if err != nil {
			return err
		}
		zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
	}
	if err := a.MigrateDB(false); err != nil {
		return errors.Wrap(err, "migrate database")
	}

	a.bus = EventBus.New()
	a.oplog, err = oplog.NewStore(a.gormDB, oplogNode)
	if err != nil {
		return err
	}
	if err := a.oplog.Subscribe(a.bus); err != nil {
		return errors.Wrap(err, "subscribe operation log")
	}

	a.client = backend.NewClient(cfg.Backend.BaseURL, cfg.BackendTimeout())
	a.dashboard = admin.NewDashboard(a.client, a.bus, cfg.Admin.SampleFallback)
	a.auth, err = admin.NewAuthenticator(cfg.Admin.Username, cfg.Admin.Password, cfg.Web.Secret, cfg.SessionMaxAge())
	if err != nil {
		return err
	}

	a.initJob()
	return nil
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			if err2, ok := err1.(error); ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	return db.Migrator().AutoMigrate(domain.Tables...)
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// Release stops the background jobs and flushes pending events and logs.
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.bus != nil {
		a.bus.WaitAsync()
		if a.oplog != nil {
			_ = a.oplog.Unsubscribe(a.bus)
		}
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}

// WarmUp loads every dashboard collection so the first console visit is
// served from the mirror.
func (a *Application) WarmUp(ctx context.Context) {
	if a.dashboard == nil {
		return
	}
	if err := a.dashboard.LoadAll(ctx); err != nil {
		zap.L().Warn("initial dashboard load incomplete", zap.Error(err))
	}
}
