// Package download dispatches a task list to yt-dlp, one task at a time,
// keeping the dedup ledger and run statistics as it goes.
package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/castfetch/castfetch/download/ledger"
	"github.com/castfetch/castfetch/download/logging"
	"github.com/castfetch/castfetch/download/metadata"
	"github.com/castfetch/castfetch/download/tasks"
	"github.com/castfetch/castfetch/download/ytdlp"
)

// Stats accumulates one run's outcome. Discarded when the run ends.
type Stats struct {
	Succeeded int
	Skipped   int
	Failed    int

	// BinaryMissing is set when the yt-dlp executable could not be found
	// mid-run and the remaining tasks were abandoned. The task in flight at
	// that point is not counted in any bucket.
	BinaryMissing bool
}

// Total returns the number of tasks that reached a terminal state.
func (s *Stats) Total() int {
	return s.Succeeded + s.Skipped + s.Failed
}

// Downloader is the slice of the yt-dlp runner the dispatcher drives.
// *ytdlp.Runner implements it.
type Downloader interface {
	Download(ctx context.Context, link, outputTemplate string, format ytdlp.Format, attempt ytdlp.Attempt) error
}

// Dispatcher walks a task list strictly sequentially.
type Dispatcher struct {
	downloader Downloader
	ledger     *ledger.Ledger
	logger     *logging.Logger
	outputDir  string
	format     ytdlp.Format
	attempts   []ytdlp.Attempt
}

// NewDispatcher builds a dispatcher. An empty attempts list falls back to the
// default two-attempt policy.
func NewDispatcher(downloader Downloader, led *ledger.Ledger, logger *logging.Logger, outputDir string, format ytdlp.Format, attempts []ytdlp.Attempt) *Dispatcher {
	if len(attempts) == 0 {
		attempts = ytdlp.DefaultAttempts
	}
	return &Dispatcher{
		downloader: downloader,
		ledger:     led,
		logger:     logger,
		outputDir:  outputDir,
		format:     format,
		attempts:   attempts,
	}
}

// Run processes every task in order. Each task ends in exactly one stats
// bucket, except the task in flight when the executable goes missing; that
// condition abandons the rest of the list and flags the stats.
func (d *Dispatcher) Run(ctx context.Context, taskList []tasks.Task) *Stats {
	stats := &Stats{}
	total := len(taskList)

	for i, task := range taskList {
		log.Printf("INFO: task_start index=%d total=%d name=%q tracking_id=%s link=%s",
			i+1, total, task.Name, task.TrackingID, task.Link)
		d.logger.Infof("dispatch", "task %d of %d: %s [%s]", i+1, total, task.Name, task.TrackingID)

		// Untrackable items are never attempted; a success could not be
		// recorded and would re-download forever.
		if task.TrackingID == tasks.UnknownTrackingID {
			stats.Failed++
			log.Printf("WARN: task_failed reason=untrackable name=%q link=%s", task.Name, task.Link)
			d.logger.Warn("dispatch", fmt.Sprintf("untrackable task failed: %s", task.Link), nil)
			continue
		}

		if d.ledger.Contains(task.TrackingID) {
			stats.Skipped++
			log.Printf("INFO: task_skipped reason=already_downloaded tracking_id=%s", task.TrackingID)
			continue
		}

		name := SanitizeName(task.Name)
		template := d.outputTemplate(name, task.TrackingID)

		err := d.download(ctx, task.Link, template)
		if errors.Is(err, ytdlp.ErrExecutableNotFound) {
			stats.BinaryMissing = true
			log.Printf("ERROR: run_aborted reason=executable_missing completed=%d remaining=%d",
				stats.Total(), total-i-1)
			d.logger.Error("dispatch", "yt-dlp executable missing, abandoning remaining tasks", err)
			return stats
		}
		if err != nil {
			stats.Failed++
			continue
		}

		stats.Succeeded++
		if err := d.ledger.Record(task.TrackingID); err != nil {
			log.Printf("WARN: ledger_record_failed tracking_id=%s error=%v", task.TrackingID, err)
			d.logger.Warn("ledger", "failed to record downloaded id", err)
		}

		if d.format == ytdlp.FormatAudio {
			d.tag(task)
		}
	}
	return stats
}

// download runs the attempt policy in order, stopping at the first success.
// A missing executable short-circuits immediately; everything else falls
// through to the next attempt.
func (d *Dispatcher) download(ctx context.Context, link, template string) error {
	var lastErr error
	for _, attempt := range d.attempts {
		log.Printf("INFO: download_attempt strategy=%s link=%s", attempt.Name, link)
		err := d.downloader.Download(ctx, link, template, d.format, attempt)
		if err == nil {
			log.Printf("INFO: download_complete strategy=%s link=%s", attempt.Name, link)
			return nil
		}
		if errors.Is(err, ytdlp.ErrExecutableNotFound) {
			return err
		}
		lastErr = err
		log.Printf("WARN: download_attempt_failed strategy=%s link=%s error=%v", attempt.Name, link, err)
	}
	log.Printf("ERROR: download_failed link=%s attempts=%d error=%v", link, len(d.attempts), lastErr)
	d.logger.Error("download", fmt.Sprintf("all attempts failed for %s", link), lastErr)
	return lastErr
}

// outputTemplate builds the yt-dlp -o value for one task. The bracketed
// tracking id makes the produced file findable afterwards.
func (d *Dispatcher) outputTemplate(name, trackingID string) string {
	return filepath.Join(d.outputDir, fmt.Sprintf("%%(upload_date)s - %s [%s].%%(ext)s", name, trackingID))
}

// tag writes ID3 frames into the downloaded file. Best effort only; the task
// already succeeded and the ledger already has it.
func (d *Dispatcher) tag(task tasks.Task) {
	path := metadata.FindDownloaded(d.outputDir, task.TrackingID)
	if path == "" {
		log.Printf("WARN: tag_skipped reason=file_not_found tracking_id=%s", task.TrackingID)
		return
	}
	if filepath.Ext(path) != ".mp3" {
		return
	}
	if err := metadata.TagMP3(path, task.Name, task.Link); err != nil {
		log.Printf("WARN: metadata_tag_failed path=%s error=%v", path, err)
		d.logger.Warn("metadata", "failed to tag downloaded file", err)
	}
}
