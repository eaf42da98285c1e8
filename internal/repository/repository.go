// Package repository contains the data access layer abstractions, one
// interface per persisted collection. Implementations live in subpackages
// (e.g. postgres). No business logic here; strictly persistence operations.
package repository

import "errors"

// ErrDuplicateActiveReport is returned by MissingReportRepository.CreateActive
// when the pet already has an active missing report. The insert is conditional,
// so the caller never observes a partial write.
var ErrDuplicateActiveReport = errors.New("an active missing report already exists for this pet")
