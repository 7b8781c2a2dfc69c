// Package services wires ingestion, reconciliation, classification, and
// assembly into a single report run. The service layer owns per-source
// failure isolation and run metrics; the core stays pure.
package services
