package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir and Download settings).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	if len(c.Branches) > 0 {
		res = append(res, OptBranches(c.Branches))
	}
	if b := c.Rules.CollapseCellularOrganisms; b != nil {
		res = append(res, OptCollapseCellularOrganisms(b))
	}
	if b := c.Rules.RemapEukaryotaToFungi; b != nil {
		res = append(res, OptRemapEukaryotaToFungi(b))
	}

	s = c.TaxdumpURL
	if s != "" {
		res = append(res, OptTaxdumpURL(s))
	}
	i = c.RequestsPerSecond
	if i > 0 {
		res = append(res, OptRequestsPerSecond(i))
	}
	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(field, s string) bool {
	if s != "" {
		return true
	}
	gn.Warn("<em>%s</em> is empty, keeping the current value", field)
	return false
}

func isValidInt(field string, i int) bool {
	if i > 0 {
		return true
	}
	gn.Warn("<em>%s</em> must be a positive number, ignoring %d", field, i)
	return false
}

// enums lists allowed values of configuration fields with a closed set of
// values.
var enums = map[string][]string{
	"Log.Level":       {"debug", "info", "warn", "error"},
	"Log.Format":      {"json", "text", "tint"},
	"Log.Destination": {"file", "stderr", "stdout"},
}

func isValidEnum(field, val string) bool {
	allowed := enums[field]
	if slices.Contains(allowed, val) {
		return true
	}

	lines := make([]string, 0, len(allowed))
	for _, v := range slices.Sorted(slices.Values(allowed)) {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> cannot be '%s'. Allowed values:\n%s\nIgnoring...",
		field, val, strings.Join(lines, "\n"),
	)
	return false
}
