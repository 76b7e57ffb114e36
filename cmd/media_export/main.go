package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/glowbooth/media-export/api"
	"github.com/glowbooth/media-export/catalog"
	"github.com/glowbooth/media-export/common/config"
	"github.com/glowbooth/media-export/common/logging"
	"github.com/glowbooth/media-export/database"
	"github.com/glowbooth/media-export/export"
	"github.com/glowbooth/media-export/metrics"
)

func main() {
	configPath := flag.String("config", "media-export.yaml", "The path to the configuration")
	migrationsPath := flag.String("migrations", "./migrations", "The absolute path for the migrations folder")
	flag.Parse()

	// Override config path with environment variable for Docker users
	configEnv := os.Getenv("EXPORT_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}

	config.Path = *configPath
	config.Runtime.MigrationsPath = *migrationsPath

	c := config.Get()
	err := logging.Setup(c.General.LogDirectory, c.General.LogColors, c.General.JsonLogs, c.General.LogLevel)
	if err != nil {
		panic(err)
	}

	logrus.Info("Starting up...")
	if c.Sentry.Enabled {
		logrus.Info("Setting up Sentry for error reporting...")
		err = sentry.Init(sentry.ClientOptions{
			Dsn:         c.Sentry.Dsn,
			Environment: c.Sentry.Environment,
			Debug:       c.Sentry.Debug,
		})
		if err != nil {
			logrus.Fatal(err)
		}
	}
	defer sentry.Flush(2 * time.Second)
	defer sentry.Recover()

	logrus.Info("Preparing database...")
	db := database.GetInstance()

	logrus.Info("Connecting to media catalog...")
	s3, err := catalog.NewS3Source(c.Catalog)
	if err != nil {
		logrus.Fatal("Failed to set up catalog: ", err)
	}
	source := catalog.NewCachedSource(s3, time.Duration(c.Catalog.ListCacheSeconds)*time.Second)

	fetcher := export.NewFetcher(c.Exports.BatchSize, c.Exports.MaxItemBytes)

	logrus.Info("Starting config watcher...")
	watcher := config.Watch()
	defer watcher.Close()
	config.AddReloadHandler(metrics.Reload)
	config.AddReloadHandler(source.Invalidate)

	logrus.Info("Starting media export service...")
	metrics.Init()
	api.Init(api.NewRoutes(source, fetcher, db))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("Stopping media export service...")
	api.Stop()
	metrics.Stop()

	logrus.Info("Goodbye!")
}
