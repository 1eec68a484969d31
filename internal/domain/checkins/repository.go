package checkins

import "context"

type Repository interface {
	ListCheckIns(ctx context.Context, filter ListFilter) ([]CheckIn, int64, error)
	CreateCheckIn(ctx context.Context, checkIn *CheckIn) error
	DeleteCheckIn(ctx context.Context, id string) (bool, error)
	// ActiveClassName returns the name of an active class, or false when the
	// class is missing or inactive.
	ActiveClassName(ctx context.Context, classID string) (string, bool, error)
}
