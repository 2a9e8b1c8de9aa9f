// Package importer tracks CSV upload progress so the import page can poll
// while the transfer to the counter API is in flight.
package importer

import (
	"sync"
	"time"
)

// keep finished entries around long enough for the final poll to see them.
const retainFinished = 5 * time.Minute

type Status struct {
	Progress int    `json:"progress"` // 0..100
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

type upload struct {
	status     Status
	finishedAt time.Time
}

type Tracker struct {
	mu      sync.Mutex
	uploads map[string]*upload
}

func NewTracker() *Tracker {
	return &Tracker{uploads: make(map[string]*upload)}
}

// Start registers an upload id at 0%.
func (t *Tracker) Start(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sweepLocked()
	t.uploads[id] = &upload{}
}

// SetProgress records the transfer fraction; values are clamped to 0..100
// and never move backwards mid-flight.
func (t *Tracker) SetProgress(id string, pct int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.uploads[id]
	if !ok || u.status.Done {
		return
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if pct > u.status.Progress {
		u.status.Progress = pct
	}
}

// Finish marks the upload complete.
func (t *Tracker) Finish(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if u, ok := t.uploads[id]; ok {
		u.status = Status{Progress: 100, Done: true}
		u.finishedAt = time.Now()
	}
}

// Fail marks the upload failed and resets the progress bar, so the page
// offers a clean retry.
func (t *Tracker) Fail(id string, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if u, ok := t.uploads[id]; ok {
		u.status = Status{Progress: 0, Done: true, Error: msg}
		u.finishedAt = time.Now()
	}
}

func (t *Tracker) Status(id string) (Status, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.uploads[id]
	if !ok {
		return Status{}, false
	}
	return u.status, true
}

func (t *Tracker) sweepLocked() {
	cutoff := time.Now().Add(-retainFinished)
	for id, u := range t.uploads {
		if u.status.Done && !u.finishedAt.IsZero() && u.finishedAt.Before(cutoff) {
			delete(t.uploads, id)
		}
	}
}
