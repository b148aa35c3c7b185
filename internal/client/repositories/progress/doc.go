// Package progress caches per-roadmap completion marks in the local
// metadata table, one JSON object per domain under "roadmap_progress_<domain>".
package progress
