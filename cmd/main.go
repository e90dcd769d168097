package main

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"sanisip/internal/gateway"
	"sanisip/internal/handlers"
	"sanisip/internal/history"
	"sanisip/internal/logger"
	"sanisip/internal/metrics"
	"sanisip/internal/notify"
	"sanisip/internal/remote"
	"sanisip/internal/repository"
	"sanisip/internal/repository/db"
	"sanisip/internal/server"
	"sanisip/internal/service"
	"sanisip/internal/status"

	"github.com/spf13/viper"
)

const (
	envPrefix       = "SANISIP"
	shutdownTimeout = 10 * time.Second
	cacheInitWait   = 30 * time.Second
)

//go:generate swag init -g main.go -d ./,../internal/handlers -o ../docs

// @title        SaniSip Dashboard API
// @version      1.0
// @description  Water-quality readings, filter life tracking and maintenance log.
// @BasePath     /
func main() {
	// config first so log.level applies
	cfgErr := loadConfig()
	log := logger.Get(viper.GetString("log.level"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(sqlDB)
	m := metrics.New()

	gw := newGateway(repos, m, log)
	initCache(gw, log)

	remoteClient := remote.NewClient(remote.Config{
		BaseURL:    viper.GetString("remote.base_url"),
		SensorPath: viper.GetString("remote.sensor_path"),
		FilterPath: viper.GetString("remote.filter_path"),
		Timeout:    viper.GetDuration("remote.timeout"),
	}, gw)

	pub := newPublisher(log)
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			log.Errorw("failed to close notifier", "err", cerr)
		}
	}()

	services := service.NewService(repos, service.Dependencies{
		Remote:         remoteClient,
		Tracker:        status.NewTracker(history.DefaultCapacity, history.DefaultCanvas),
		Publisher:      pub,
		Recorder:       m,
		Log:            log,
		FilterLifeDays: viper.GetInt("filter.life_days"),
		AssetsOrigin:   viper.GetString("assets.origin"),
		AssetTransport: gw,
	})
	apiHandler := handlers.NewHandler(services, log.Named("http"), m.Handler())

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		services.Poller.Run(ctx, viper.GetDuration("poll.sensor_interval"))
	}()
	go func() {
		defer wg.Done()
		services.Filter.Watch(ctx, viper.GetDuration("poll.filter_interval"))
	}()

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(cancel, &wg, srv, log)
}

// loadConfig reads configs/config.yml; SANISIP_* env vars override file values
// (SANISIP_REMOTE_BASE_URL for remote.base_url).
func loadConfig() error {
	setDefaults()
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults plus env are enough to run
			return nil
		}
		return err
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("db.path", "sanisip.db")
	viper.SetDefault("remote.sensor_path", "WaterData")
	viper.SetDefault("remote.filter_path", "FilterData")
	viper.SetDefault("remote.timeout", 10*time.Second)
	viper.SetDefault("poll.sensor_interval", service.DefaultSensorInterval)
	viper.SetDefault("poll.filter_interval", service.DefaultFilterInterval)
	viper.SetDefault("filter.life_days", service.DefaultFilterLifeDays)
	viper.SetDefault("cache.name", "sanisip-v1")
	viper.SetDefault("cache.persist", true)
	viper.SetDefault("mqtt.topic", notify.DefaultTopic)
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "sanisip.db")
		dbPath = "sanisip.db"
	}
	return db.InitDB(dbPath)
}

// newGateway builds the caching transport. Data hosts are the configured
// suffixes plus the remote store's own host.
func newGateway(repos *repository.Repository, m *metrics.Metrics, log *logger.Logger) *gateway.Gateway {
	var store gateway.Store = gateway.NewMemoryStore()
	if viper.GetBool("cache.persist") {
		store = repos.CacheStore
	}

	hosts := viper.GetStringSlice("cache.data_hosts")
	if len(hosts) == 0 {
		hosts = []string{gateway.DefaultDataHost}
	}
	if u, err := url.Parse(viper.GetString("remote.base_url")); err == nil && u.Host != "" {
		hosts = append(hosts, u.Host)
	}

	var shell string
	var precache []string
	if origin := strings.TrimRight(viper.GetString("assets.origin"), "/"); origin != "" {
		shell = origin + "/index.html"
		for _, p := range viper.GetStringSlice("cache.precache") {
			if !strings.Contains(p, "://") {
				p = origin + "/" + strings.TrimLeft(p, "/")
			}
			precache = append(precache, p)
		}
	}

	return gateway.New(gateway.Config{
		CacheName: viper.GetString("cache.name"),
		DataHosts: hosts,
		Precache:  precache,
		ShellURL:  shell,
	}, store, nil, log.Named("gateway"), m)
}

// initCache runs install then activate. Failures are logged; the dashboard
// still works online without a warm cache.
func initCache(gw *gateway.Gateway, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheInitWait)
	defer cancel()

	if err := gw.Install(ctx); err != nil {
		log.Errorw("cache_install_failed", "err", err)
		return
	}
	if err := gw.Activate(ctx); err != nil {
		log.Errorw("cache_activate_failed", "err", err)
	}
}

// newPublisher connects to MQTT when a broker is configured, otherwise status
// changes are not published.
func newPublisher(log *logger.Logger) notify.Publisher {
	broker := viper.GetString("mqtt.broker")
	if broker == "" {
		log.Infow("mqtt.broker not set; status notifications disabled")
		return notify.Noop{}
	}
	pub, err := notify.NewMQTTPublisher(notify.Config{
		Broker:   broker,
		ClientID: viper.GetString("mqtt.client_id"),
		Topic:    viper.GetString("mqtt.topic"),
	}, log.Named("mqtt"))
	if err != nil {
		log.Errorw("mqtt_connect_failed", "err", err, "broker", broker)
		return notify.Noop{}
	}
	return pub
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	log.Infow("http_server_started", "port", port)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, wg *sync.WaitGroup, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop poll loops and wait for in-flight cycles
	cancel()
	wg.Wait()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
