// Package marketcal provides the trading-day calendar used to turn nominal
// disposal end dates into actual release dates. Weekends are implied;
// market holidays are supplied explicitly, typically from a YAML table via
// LoadHolidays. The calendar is a plain value constructed per run, so tests
// can classify against synthetic holiday sets.
package marketcal
