// Package picker is the server side of the location picker: it keeps one
// coordinate pair per form session consistent across the map marker, the
// lat/lng inputs and the camera, while debouncing text search (geocoding)
// and field edits (camera fly-to) independently. The browser feeds it input
// events and renders the event stream it publishes.
package picker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/IvanMykytyn/BetterMeTestTask/internal/geocode"
)

const (
	// SearchDebounce is how long typing must settle before a geocode call.
	SearchDebounce = 800 * time.Millisecond
	// FieldDebounce is the longer window for field-edit driven fly-to, so
	// the camera doesn't pan on every keystroke of a hand-typed coordinate.
	FieldDebounce = time.Second
	// MinQueryLength: shorter trimmed queries never reach the geocoder.
	MinQueryLength = 3
	// resultLifetime: how long a search result keeps steering the camera
	// before field edits take over again.
	resultLifetime = 1200 * time.Millisecond
)

const (
	msgNotFound     = "Location not found"
	msgSearchFailed = "Search failed"
)

// Event types published to the browser.
const (
	EventCoords    = "coords"    // marker/fields moved
	EventFlyTo     = "fly_to"    // one camera animation; Zoom 0 keeps current zoom
	EventSearching = "searching" // search spinner on/off
	EventError     = "error"     // field-local message; empty clears it
)

type Event struct {
	Type      string  `json:"type"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Zoom      int     `json:"zoom"`
	Searching bool    `json:"searching"`
	Message   string  `json:"message"`
}

// Geocoder is what the picker needs from internal/geocode.
type Geocoder interface {
	Search(ctx context.Context, query string) (geocode.Result, error)
}

// Config overrides the timing constants; zero values mean defaults. Tests
// shrink the windows.
type Config struct {
	SearchDebounce time.Duration
	FieldDebounce  time.Duration
	ResultLifetime time.Duration
}

type searchResult struct {
	coords Coords
	zoom   int
}

type Picker struct {
	geocoder Geocoder

	searchDeb *debouncer
	fieldDeb  *debouncer
	resultTTL time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	coords      *Coords
	seq         uint64 // latest issued search sequence; stale responses lose
	result      *searchResult
	resultTimer *time.Timer
	closed      bool

	events chan Event
}

func New(g Geocoder, cfg Config) *Picker {
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = SearchDebounce
	}
	if cfg.FieldDebounce <= 0 {
		cfg.FieldDebounce = FieldDebounce
	}
	if cfg.ResultLifetime <= 0 {
		cfg.ResultLifetime = resultLifetime
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Picker{
		geocoder:  g,
		searchDeb: newDebouncer(cfg.SearchDebounce),
		fieldDeb:  newDebouncer(cfg.FieldDebounce),
		resultTTL: cfg.ResultLifetime,
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan Event, 32),
	}
}

// Events is the ordered outbound stream. The channel closes on Close.
func (p *Picker) Events() <-chan Event { return p.events }

// Coords returns the currently chosen pair, if any.
func (p *Picker) Coords() (Coords, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.coords == nil {
		return Coords{}, false
	}
	return *p.coords, true
}

// SetQuery handles a search-box edit. Queries shorter than MinQueryLength
// (after trimming) cancel any pending search and clear the error/searching
// indicators; anything longer schedules a debounced geocode lookup.
func (p *Picker) SetQuery(query string) {
	trimmed := strings.TrimSpace(query)

	p.mu.Lock()
	p.seq++ // any in-flight response is now stale
	p.mu.Unlock()

	if len(trimmed) < MinQueryLength {
		p.searchDeb.Cancel()
		p.emit(Event{Type: EventSearching, Searching: false})
		p.emit(Event{Type: EventError, Message: ""})
		return
	}

	p.searchDeb.Trigger(func() { p.runSearch(trimmed) })
}

func (p *Picker) runSearch(query string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.seq++
	mySeq := p.seq
	p.mu.Unlock()

	p.emit(Event{Type: EventSearching, Searching: true})
	p.emit(Event{Type: EventError, Message: ""})

	res, err := p.geocoder.Search(p.ctx, query)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || mySeq != p.seq {
		// superseded while in flight; drop the answer on the floor
		return
	}

	p.emitLocked(Event{Type: EventSearching, Searching: false})

	switch {
	case err == nil:
		p.coords = &Coords{Lat: res.Lat, Lng: res.Lng}
		p.setResultLocked(searchResult{coords: *p.coords, zoom: SearchZoom})
		p.emitLocked(Event{Type: EventCoords, Lat: res.Lat, Lng: res.Lng})
		p.emitLocked(Event{Type: EventFlyTo, Lat: res.Lat, Lng: res.Lng, Zoom: SearchZoom})
	case errors.Is(err, geocode.ErrNotFound):
		p.emitLocked(Event{Type: EventError, Message: msgNotFound})
	default:
		p.emitLocked(Event{Type: EventError, Message: msgSearchFailed})
	}
}

// setResultLocked records the ephemeral search result and arranges for it to
// expire, so a later field edit doesn't re-trigger the same fly-to.
func (p *Picker) setResultLocked(r searchResult) {
	if p.resultTimer != nil {
		p.resultTimer.Stop()
	}
	p.result = &r
	p.resultTimer = time.AfterFunc(p.resultTTL, func() {
		p.mu.Lock()
		p.result = nil
		p.mu.Unlock()
	})
}

// EditCoords handles direct edits of the latitude/longitude inputs: the
// marker follows immediately, the camera only after the pair has settled
// for the field debounce window, and only for valid pairs.
func (p *Picker) EditCoords(lat, lng float64) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.coords = &Coords{Lat: lat, Lng: lng}
	p.mu.Unlock()

	if ValidCoordinate(lat, lng) {
		p.emit(Event{Type: EventCoords, Lat: lat, Lng: lng})
	}

	p.fieldDeb.Trigger(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed || p.result != nil {
			// an active search result owns the camera right now
			return
		}
		if p.coords == nil || !p.coords.Valid() {
			return
		}
		p.emitLocked(Event{Type: EventFlyTo, Lat: p.coords.Lat, Lng: p.coords.Lng})
	})
}

// Click handles a direct map click: coordinates apply immediately and any
// pending search text, request or error is discarded.
func (p *Picker) Click(lat, lng float64) {
	if !ValidCoordinate(lat, lng) {
		return
	}

	p.searchDeb.Cancel()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.seq++
	p.coords = &Coords{Lat: lat, Lng: lng}
	p.emitLocked(Event{Type: EventCoords, Lat: lat, Lng: lng})
	p.emitLocked(Event{Type: EventError, Message: ""})
	p.mu.Unlock()
}

func (p *Picker) Close() {
	p.searchDeb.Cancel()
	p.fieldDeb.Cancel()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if p.resultTimer != nil {
		p.resultTimer.Stop()
	}
	close(p.events)
}

func (p *Picker) emit(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emitLocked(e)
}

// emitLocked never blocks: a browser that stopped reading only loses
// cosmetic updates, not correctness.
func (p *Picker) emitLocked(e Event) {
	if p.closed {
		return
	}
	select {
	case p.events <- e:
	default:
	}
}
