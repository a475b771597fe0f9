// Package downloadmgr downloads queued items one after another.
package downloadmgr

import (
	"context"
)

// Downloader allows downloadmgr to download the file
type Downloader interface {
	Download(ctx context.Context) error
}

// Progress is the sink download progress is reported to. cmdlog.Task
// implements this for terminal output
type Progress interface {
	Begin(label string, total int)
	Advance(current int)
	End()
}

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue    []Downloader
	Label    string
	Progress Progress
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start works through the download queue in order. The first failing
// item aborts the whole queue, files already on disk stay in place
func (d *DownloadManager) Start(ctx context.Context) error {
	if d.queue == nil {
		return nil
	}

	if d.Progress != nil {
		d.Progress.Begin(d.Label, len(d.queue))
		defer d.Progress.End()
	}

	for i, item := range d.queue {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := item.Download(ctx); err != nil {
			return err
		}
		if d.Progress != nil {
			d.Progress.Advance(i + 1)
		}
	}
	return nil
}
