// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the scheduling core, allowing the scheduler, prioritizer and composer
// to remain independent of specific database technologies.
package store
