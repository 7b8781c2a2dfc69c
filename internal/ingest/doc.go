// Package ingest fetches raw disposal announcements from the TWSE and
// TPEx JSON feeds and maps their positional rows into RawDisposalRecord
// values. One shared client rate-limits all outbound requests. Mapping is
// lenient: a row that cannot yield a period end is dropped and counted,
// never fatal, and a TPEx anti-scraping block page degrades to an empty
// row set.
package ingest
