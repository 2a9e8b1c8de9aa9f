package querystate

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Filters is the applied, typed filter set. Zero values mean "not set";
// the numeric bounds use pointers so 0 is a legal bound.
type Filters struct {
	FromTimestamp string
	ToTimestamp   string
	MinSubtotal   *float64
	MaxSubtotal   *float64
	MinTotal      *float64
	MaxTotal      *float64
	State         string
	County        string
	City          string
}

// Filter key names, shared by URL params, chips and the remove endpoint.
const (
	KeyFromTimestamp = "fromTimestamp"
	KeyToTimestamp   = "toTimestamp"
	KeyMinSubtotal   = "minSubtotal"
	KeyMaxSubtotal   = "maxSubtotal"
	KeyMinTotal      = "minTotal"
	KeyMaxTotal      = "maxTotal"
	KeyState         = "state"
	KeyCounty        = "county"
	KeyCity          = "city"
)

// FilterKeys lists every filter key in display order.
var FilterKeys = []string{
	KeyFromTimestamp, KeyToTimestamp,
	KeyMinSubtotal, KeyMaxSubtotal,
	KeyMinTotal, KeyMaxTotal,
	KeyState, KeyCounty, KeyCity,
}

func parseFilters(q url.Values) Filters {
	var f Filters
	f.FromTimestamp = strings.TrimSpace(q.Get(KeyFromTimestamp))
	f.ToTimestamp = strings.TrimSpace(q.Get(KeyToTimestamp))
	f.MinSubtotal = parseFloatParam(q.Get(KeyMinSubtotal))
	f.MaxSubtotal = parseFloatParam(q.Get(KeyMaxSubtotal))
	f.MinTotal = parseFloatParam(q.Get(KeyMinTotal))
	f.MaxTotal = parseFloatParam(q.Get(KeyMaxTotal))
	f.State = strings.TrimSpace(q.Get(KeyState))
	f.County = strings.TrimSpace(q.Get(KeyCounty))
	f.City = strings.TrimSpace(q.Get(KeyCity))
	return f
}

func (f Filters) encode(q url.Values) {
	setStr := func(key, v string) {
		if v != "" {
			q.Set(key, v)
		}
	}
	setNum := func(key string, v *float64) {
		if v != nil {
			q.Set(key, formatFloat(*v))
		}
	}
	setStr(KeyFromTimestamp, f.FromTimestamp)
	setStr(KeyToTimestamp, f.ToTimestamp)
	setNum(KeyMinSubtotal, f.MinSubtotal)
	setNum(KeyMaxSubtotal, f.MaxSubtotal)
	setNum(KeyMinTotal, f.MinTotal)
	setNum(KeyMaxTotal, f.MaxTotal)
	setStr(KeyState, f.State)
	setStr(KeyCounty, f.County)
	setStr(KeyCity, f.City)
}

func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Has reports whether the filter behind key is applied.
func (f Filters) Has(key string) bool {
	switch key {
	case KeyFromTimestamp:
		return f.FromTimestamp != ""
	case KeyToTimestamp:
		return f.ToTimestamp != ""
	case KeyMinSubtotal:
		return f.MinSubtotal != nil
	case KeyMaxSubtotal:
		return f.MaxSubtotal != nil
	case KeyMinTotal:
		return f.MinTotal != nil
	case KeyMaxTotal:
		return f.MaxTotal != nil
	case KeyState:
		return f.State != ""
	case KeyCounty:
		return f.County != ""
	case KeyCity:
		return f.City != ""
	}
	return false
}

// Remove clears exactly one filter, leaving the others untouched.
func (f Filters) Remove(key string) Filters {
	switch key {
	case KeyFromTimestamp:
		f.FromTimestamp = ""
	case KeyToTimestamp:
		f.ToTimestamp = ""
	case KeyMinSubtotal:
		f.MinSubtotal = nil
	case KeyMaxSubtotal:
		f.MaxSubtotal = nil
	case KeyMinTotal:
		f.MinTotal = nil
	case KeyMaxTotal:
		f.MaxTotal = nil
	case KeyState:
		f.State = ""
	case KeyCounty:
		f.County = ""
	case KeyCity:
		f.City = ""
	}
	return f
}

// FiltersDraft is the free-form staging area behind the filters panel.
// Everything is a string so half-typed input survives a round trip without
// touching the applied query; dates use the "2006-01-02" form inputs emit.
type FiltersDraft struct {
	FromDate    string `json:"from_date" form:"fromDate"`
	ToDate      string `json:"to_date" form:"toDate"`
	MinSubtotal string `json:"min_subtotal" form:"minSubtotal"`
	MaxSubtotal string `json:"max_subtotal" form:"maxSubtotal"`
	MinTotal    string `json:"min_total" form:"minTotal"`
	MaxTotal    string `json:"max_total" form:"maxTotal"`
	State       string `json:"state" form:"state"`
	County      string `json:"county" form:"county"`
	City        string `json:"city" form:"city"`
}

func (d FiltersDraft) IsZero() bool {
	return d == FiltersDraft{}
}

// Apply converts the draft into typed filters. Unparseable numbers are
// skipped rather than applied as zero, dates expand to day boundaries
// (start of day for "from", end of day for "to").
func (d FiltersDraft) Apply() Filters {
	var f Filters
	f.FromTimestamp = dateToTimestamp(d.FromDate, false)
	f.ToTimestamp = dateToTimestamp(d.ToDate, true)
	f.MinSubtotal = parseFloatParam(d.MinSubtotal)
	f.MaxSubtotal = parseFloatParam(d.MaxSubtotal)
	f.MinTotal = parseFloatParam(d.MinTotal)
	f.MaxTotal = parseFloatParam(d.MaxTotal)
	f.State = strings.TrimSpace(d.State)
	f.County = strings.TrimSpace(d.County)
	f.City = strings.TrimSpace(d.City)
	return f
}

// Remove clears the draft field matching an applied-filter key, so chip
// removal keeps the panel and the query in sync.
func (d FiltersDraft) Remove(key string) FiltersDraft {
	switch key {
	case KeyFromTimestamp:
		d.FromDate = ""
	case KeyToTimestamp:
		d.ToDate = ""
	case KeyMinSubtotal:
		d.MinSubtotal = ""
	case KeyMaxSubtotal:
		d.MaxSubtotal = ""
	case KeyMinTotal:
		d.MinTotal = ""
	case KeyMaxTotal:
		d.MaxTotal = ""
	case KeyState:
		d.State = ""
	case KeyCounty:
		d.County = ""
	case KeyCity:
		d.City = ""
	}
	return d
}

// DraftFromFilters rebuilds an editable draft from applied filters, for
// first render when no draft cookie exists yet.
func DraftFromFilters(f Filters) FiltersDraft {
	var d FiltersDraft
	d.FromDate = timestampToDate(f.FromTimestamp)
	d.ToDate = timestampToDate(f.ToTimestamp)
	if f.MinSubtotal != nil {
		d.MinSubtotal = formatFloat(*f.MinSubtotal)
	}
	if f.MaxSubtotal != nil {
		d.MaxSubtotal = formatFloat(*f.MaxSubtotal)
	}
	if f.MinTotal != nil {
		d.MinTotal = formatFloat(*f.MinTotal)
	}
	if f.MaxTotal != nil {
		d.MaxTotal = formatFloat(*f.MaxTotal)
	}
	d.State = f.State
	d.County = f.County
	d.City = f.City
	return d
}

// dateToTimestamp turns "2006-01-02" into the API timestamp form, pinned to
// the start or end of the day.
func dateToTimestamp(date string, endOfDay bool) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ""
	}
	if endOfDay {
		return date + " 23:59:59"
	}
	return date + " 00:00:00"
}

func timestampToDate(ts string) string {
	if len(ts) >= 10 {
		if _, err := time.Parse("2006-01-02", ts[:10]); err == nil {
			return ts[:10]
		}
	}
	return ""
}

func parseFloatParam(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
