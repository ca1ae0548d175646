// Package announcement provides the lifecycle use cases for announcements.
// It implements creation with an intent (save draft, publish now, schedule),
// partial updates, the explicit publish/schedule/archive transitions, deletion,
// owner analytics and the scheduled publish job.
package announcement

import "errors"

// Sentinel errors for announcement use case operations.
var (
	// ErrAnnouncementNotFound indicates that the requested announcement does not exist
	// or belongs to another owner.
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrInvalidAnnouncementID indicates that the id is not a UUID.
	ErrInvalidAnnouncementID = errors.New("invalid announcement ID")

	// ErrOwnerRequired indicates that the caller identity is missing.
	ErrOwnerRequired = errors.New("owner is required")
)
