// Package disposal implements the reconciliation and classification engine
// for regulatory disposal (trading-restriction) measures.
//
// Raw per-source rows are first reconciled into one canonical record per
// (source, security id), keeping the record with the latest period end when
// a security was re-announced or extended. Each canonical record is then
// classified against a reference date and a trading-day calendar into one
// lifecycle bucket: released today, releasing next trading day, entered
// today, or still restricted. Finally the classified records are assembled
// into a fully ordered report with stable section and entry ordering.
//
// Everything in this package is a pure function over immutable inputs; the
// reference date is always an explicit parameter, never the system clock.
package disposal
