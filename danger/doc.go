// Package danger computes per-tile and per-character threat scores
// from visible monsters and classifies the resulting danger into the
// four-tier scale (CRITICAL/DANGER/CAUTION/SAFE) that the tier handler
// dispatches on (spec.md §4.B).
package danger
