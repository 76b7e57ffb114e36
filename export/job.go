package export

import (
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/glowbooth/media-export/catalog"
	"github.com/glowbooth/media-export/common"
	"github.com/glowbooth/media-export/common/rcontext"
	"github.com/glowbooth/media-export/metrics"
	"github.com/glowbooth/media-export/sinks"
	"github.com/glowbooth/media-export/util"
)

type JobOpts struct {
	Topic      string
	OnProgress func(percent int)

	// OnBeforeDeliver runs after the archive is sealed but before the sink
	// opens, while response headers can still be set from the summary.
	OnBeforeDeliver func(summary *Summary)
}

type ItemFailure struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Summary is what a finished job reports. Partial success is still success:
// failures only show up as the difference between Total and Succeeded, plus
// the Failed details for anyone who wants them.
type Summary struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    []ItemFailure `json:"failed"`
	FileName  string        `json:"file_name"`
	SizeBytes int64         `json:"size_bytes"`
}

// RunJob fetches every target, bundles the successes into a zip, and delivers
// it through the sink. Jobs are ephemeral: nothing about a run survives past
// the returned Summary. Per-item failures never become job errors; only
// empty input, cancellation, total failure, sealing, and delivery do.
func RunJob(ctx rcontext.RequestContext, targets []catalog.MediaDescriptor, fetcher *Fetcher, sink sinks.Sink, opts JobOpts) (*Summary, error) {
	if len(targets) == 0 {
		return nil, common.ErrNothingToExport
	}

	jobId, err := util.GenerateRandomString(16)
	if err != nil {
		return nil, err
	}
	ctx = ctx.LogWithFields(logrus.Fields{
		"exportJobId": jobId,
		"exportTopic": opts.Topic,
	})

	metrics.ExportJobsStarted.Inc()
	ctx.Log.Infof("Exporting %d items", len(targets))

	// Snapshot the targets: callers may keep mutating whatever collection
	// these came from, but this job no longer cares.
	snapshot := make([]catalog.MediaDescriptor, len(targets))
	copy(snapshot, targets)

	progress := NewProgress(len(snapshot), opts.OnProgress)
	builder := NewArchiveBuilder()
	summary := &Summary{Total: len(snapshot), Failed: make([]ItemFailure, 0)}

	maxArchiveBytes := ctx.Config.Exports.MaxArchiveBytes
	var rawBytes int64

	err = fetcher.FetchAll(ctx, snapshot, func(res FetchResult) {
		defer progress.Settle()
		if !res.Ok() {
			summary.Failed = append(summary.Failed, ItemFailure{
				Id:     res.Target.Id,
				Name:   res.Target.DisplayName,
				Reason: res.Err.Error(),
			})
			return
		}
		// Bound the uncompressed total: the archive is assembled in memory
		if maxArchiveBytes > 0 && rawBytes+int64(len(res.Body)) > maxArchiveBytes {
			summary.Failed = append(summary.Failed, ItemFailure{
				Id:     res.Target.Id,
				Name:   res.Target.DisplayName,
				Reason: common.ErrArchiveTooLarge.Error(),
			})
			return
		}
		if archiveResult(ctx, builder, summary, res) {
			rawBytes += int64(len(res.Body))
		}
	})
	if err != nil {
		metrics.ExportJobsFailed.Inc()
		return nil, err
	}

	if summary.Succeeded == 0 {
		metrics.ExportJobsFailed.Inc()
		return nil, common.ErrAllItemsFailed
	}

	sealed, size, err := builder.Seal()
	if err != nil {
		metrics.ExportJobsFailed.Inc()
		return nil, err
	}
	summary.FileName = ArchiveFileName(opts.Topic, time.Now())
	summary.SizeBytes = size

	if opts.OnBeforeDeliver != nil {
		opts.OnBeforeDeliver(summary)
	}

	handle, err := sink.Open(ctx, summary.FileName)
	if err != nil {
		metrics.ExportJobsFailed.Inc()
		return nil, err
	}
	defer func() {
		if releaseErr := handle.Release(); releaseErr != nil {
			ctx.Log.Warn("error releasing download handle:", releaseErr)
		}
	}()

	if _, err = io.Copy(handle, sealed); err != nil {
		metrics.ExportJobsFailed.Inc()
		return nil, err
	}
	if err = handle.Commit(); err != nil {
		metrics.ExportJobsFailed.Inc()
		return nil, err
	}

	metrics.ExportJobsCompleted.Inc()
	metrics.ExportBytesArchived.Add(float64(size))
	ctx.Log.Infof("Bundled %d of %d items into %s (%s)", summary.Succeeded, summary.Total, summary.FileName, humanize.Bytes(uint64(size)))
	return summary, nil
}

// archiveResult inserts one fetched item into the archive. An insertion
// failure becomes a per-item failure on the summary, never a job error.
func archiveResult(ctx rcontext.RequestContext, builder *ArchiveBuilder, summary *Summary, res FetchResult) bool {
	if err := builder.Add(ctx, res.Target.DisplayName, res.Body); err != nil {
		ctx.Log.Warnf("Could not archive %s: %s", res.Target.DisplayName, err)
		summary.Failed = append(summary.Failed, ItemFailure{
			Id:     res.Target.Id,
			Name:   res.Target.DisplayName,
			Reason: err.Error(),
		})
		return false
	}
	summary.Succeeded++
	return true
}

// DeliverCsv renders rows and pushes the result through the same sink
// mechanism the archive path uses, under the topic's CSV filename.
func DeliverCsv(ctx rcontext.RequestContext, columns []CsvColumn, rows []CsvRow, sink sinks.Sink, topic string) (string, error) {
	content, err := RenderCsv(columns, rows)
	if err != nil {
		return "", err
	}

	fileName := CsvFileName(topic, time.Now())
	handle, err := sink.Open(ctx, fileName)
	if err != nil {
		return "", err
	}
	defer func() {
		if releaseErr := handle.Release(); releaseErr != nil {
			ctx.Log.Warn("error releasing download handle:", releaseErr)
		}
	}()

	if _, err = io.WriteString(handle, content); err != nil {
		return "", err
	}
	if err = handle.Commit(); err != nil {
		return "", err
	}

	ctx.Log.Infof("Exported %d rows to %s", len(rows), fileName)
	return fileName, nil
}
