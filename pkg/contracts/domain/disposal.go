package domain

import (
	"time"
)

// Source identifies the board a disposal announcement came from.
type Source string

const (
	// SourceTWSE is the main board (Taiwan Stock Exchange).
	SourceTWSE Source = "twse"
	// SourceTPEx is the over-the-counter board (Taipei Exchange).
	SourceTPEx Source = "tpex"
)

// AllSources lists the boards in their canonical report order.
var AllSources = []Source{SourceTWSE, SourceTPEx}

// DisplayName returns the human-readable board name used in rendered reports.
func (s Source) DisplayName() string {
	switch s {
	case SourceTWSE:
		return "TWSE"
	case SourceTPEx:
		return "TPEx"
	default:
		return string(s)
	}
}

// RawDisposalRecord is a single row as mapped from a provider feed, before
// reconciliation. Date fields use the zero time.Time to mean "not resolved";
// a record whose PeriodEnd is unresolved carries no usable clock anchor and
// is dropped before reconciliation.
type RawDisposalRecord struct {
	SecurityID   string    `json:"security_id" validate:"required"`
	SecurityName string    `json:"security_name"`
	Source       Source    `json:"source" validate:"required,oneof=twse tpex"`
	AnnounceDate time.Time `json:"announce_date,omitempty"`
	PeriodStart  time.Time `json:"period_start,omitempty"`
	PeriodEnd    time.Time `json:"period_end,omitempty"`
	RawRange     string    `json:"raw_range"`
}

// HasAnnounceDate reports whether the announcement date resolved.
func (r RawDisposalRecord) HasAnnounceDate() bool { return !r.AnnounceDate.IsZero() }

// HasPeriodEnd reports whether the period end resolved.
func (r RawDisposalRecord) HasPeriodEnd() bool { return !r.PeriodEnd.IsZero() }

// DisposalRecord is the canonical, reconciled record: exactly one per
// (source, security id) for a given run, always with a resolved PeriodEnd.
type DisposalRecord struct {
	SecurityID   string    `json:"security_id"`
	SecurityName string    `json:"security_name"`
	Source       Source    `json:"source"`
	AnnounceDate time.Time `json:"announce_date,omitempty"`
	PeriodStart  time.Time `json:"period_start,omitempty"`
	PeriodEnd    time.Time `json:"period_end"`
	RawRange     string    `json:"raw_range"`
}

// HasAnnounceDate reports whether the announcement date resolved.
func (r DisposalRecord) HasAnnounceDate() bool { return !r.AnnounceDate.IsZero() }

// Bucket is the lifecycle state of a disposal record relative to the run date.
type Bucket string

const (
	// BucketReleasedToday means the security resumes normal trading today.
	BucketReleasedToday Bucket = "released_today"
	// BucketReleasingNextTradingDay means today is the last restricted
	// session and the next trading day is the release date.
	BucketReleasingNextTradingDay Bucket = "releasing_next_trading_day"
	// BucketEnteredToday means the restriction takes effect today.
	BucketEnteredToday Bucket = "entered_today"
	// BucketStillRestricted means today falls inside the restriction window.
	BucketStillRestricted Bucket = "still_restricted"
)

// BucketOrder is the canonical section order for rendered reports.
var BucketOrder = []Bucket{
	BucketReleasedToday,
	BucketReleasingNextTradingDay,
	BucketEnteredToday,
	BucketStillRestricted,
}

// DisplayName returns the section title used in rendered reports.
func (b Bucket) DisplayName() string {
	switch b {
	case BucketReleasedToday:
		return "Released today"
	case BucketReleasingNextTradingDay:
		return "Releasing next trading day"
	case BucketEnteredToday:
		return "Entered disposal today"
	case BucketStillRestricted:
		return "Still restricted"
	default:
		return string(b)
	}
}

// ClassifiedRecords holds the classification result keyed by source then
// bucket. Records the classifier assigned to no bucket do not appear.
type ClassifiedRecords map[Source]map[Bucket][]DisposalRecord

// ReportEntry is one line of an ordered report section.
type ReportEntry struct {
	SecurityID   string `json:"security_id"`
	SecurityName string `json:"security_name"`
	RawRange     string `json:"raw_range"`
}

// BucketGroup is one bucket's ordered members within a source section.
// Entries is empty, never nil, when no records qualify.
type BucketGroup struct {
	Bucket  Bucket        `json:"bucket"`
	Entries []ReportEntry `json:"entries"`
}

// SourceSection groups one source's buckets in canonical order.
type SourceSection struct {
	Source  Source        `json:"source"`
	Buckets []BucketGroup `json:"buckets"`
}

// OrderedReport is the final, fully ordered run output: every source and
// every bucket is present even when empty, entries sorted by security id.
type OrderedReport struct {
	Date     time.Time       `json:"date"`
	Sections []SourceSection `json:"sections"`
}
