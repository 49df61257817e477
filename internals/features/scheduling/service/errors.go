// file: internals/features/scheduling/service/errors.go
package service

import "errors"

// Input / lookup errors the controllers map to 4xx responses. Everything else
// coming out of this package is a storage error and stays a 500 unless the
// SQLSTATE mapping says otherwise.
var (
	ErrInvalidDay            = errors.New("invalid day")
	ErrInvalidTimeRange      = errors.New("invalid time range")
	ErrSectionNotFound       = errors.New("class section not found")
	ErrFacultyNotFound       = errors.New("faculty not found")
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrSubjectNotFound       = errors.New("subject not found")
	ErrFacultyNotSchedulable = errors.New("faculty is not active for scheduling")
	ErrFacultyOnLeave        = errors.New("faculty is on approved leave")
	ErrSameTeacher           = errors.New("substitute is already the assigned teacher")
	ErrAlreadySubstituted    = errors.New("schedule already has an active substitute")
	ErrNoActiveSubstitution  = errors.New("schedule has no active substitute assignment")
	ErrOriginalMismatch      = errors.New("original faculty does not match the substitution record")
)
