package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/glowbooth/media-export/catalog"
	"github.com/glowbooth/media-export/common/config"
	"github.com/glowbooth/media-export/common/logging"
	"github.com/glowbooth/media-export/common/rcontext"
	"github.com/glowbooth/media-export/export"
	"github.com/glowbooth/media-export/sinks"
)

// bulk_export runs one export against the configured catalog and writes the
// archive to a local directory. Useful for pulling a whole event's media
// without going through the dashboard.
func main() {
	configPath := flag.String("config", "media-export.yaml", "The path to the configuration")
	destination := flag.String("destination", "./exports", "The directory for where the archive should be placed")
	topic := flag.String("topic", "media", "The topic to use in the archive filename")
	idsFlag := flag.String("ids", "", "Comma-separated catalog ids to export (default: everything)")
	flag.Parse()

	configEnv := os.Getenv("EXPORT_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}
	config.Path = *configPath

	c := config.Get()
	err := logging.Setup(c.General.LogDirectory, c.General.LogColors, c.General.JsonLogs, c.General.LogLevel)
	if err != nil {
		panic(err)
	}

	logrus.Info("Starting up...")
	ctx := rcontext.Initial().LogWithFields(logrus.Fields{"flagTopic": *topic})

	s3, err := catalog.NewS3Source(c.Catalog)
	if err != nil {
		logrus.Fatal("Failed to set up catalog: ", err)
	}

	logrus.Info("Listing media...")
	listing, err := s3.List(ctx)
	if err != nil {
		logrus.Fatal("Failed to list media: ", err)
	}

	targets := listing
	if *idsFlag != "" {
		targets = catalog.FilterByIds(listing, strings.Split(*idsFlag, ","))
	}

	fetcher := export.NewFetcher(c.Exports.BatchSize, c.Exports.MaxItemBytes)
	sink := sinks.NewDiskSink(*destination)

	lastReported := -1
	summary, err := export.RunJob(ctx, targets, fetcher, sink, export.JobOpts{
		Topic: *topic,
		OnProgress: func(percent int) {
			// log every 10% rather than every item
			if percent/10 > lastReported/10 || percent == 100 {
				logrus.Infof("Export progress: %d%%", percent)
			}
			lastReported = percent
		},
	})
	if err != nil {
		logrus.Fatal("Export failed: ", err)
	}

	for _, failure := range summary.Failed {
		logrus.Warnf("Failed to export %s (%s): %s", failure.Id, failure.Name, failure.Reason)
	}
	logrus.Infof("Export complete! Bundled %d of %d items (%s) into %s",
		summary.Succeeded, summary.Total, humanize.Bytes(uint64(summary.SizeBytes)), filepath.Join(*destination, summary.FileName))
}
