// Package dates parses the date and period formats used by the TWSE and
// TPEx disposal feeds.
//
// Feed dates arrive in two calendar conventions: the ROC calendar
// (7 digits, year offset by 1911, e.g. "115/01/01") and the Gregorian
// calendar (8 digits, e.g. "20260101"). Periods arrive as a single text
// field joining two such dates with a wave dash, a tilde, or a hyphen.
// Parse failures are reported as *ParseError values, never panics, so a
// malformed row degrades to an absent field instead of aborting a run.
package dates
