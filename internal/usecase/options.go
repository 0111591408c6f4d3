package usecase

import (
	"time"

	"job-tracker-api/internal/analytics"

	"github.com/oklog/ulid/v2"
)

type options struct {
	now   func() time.Time
	rnd   analytics.Random
	newID func() string
}

// Option overrides a runtime dependency, mostly for tests.
type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithRandom(r analytics.Random) Option {
	return func(o *options) { o.rnd = r }
}

func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   func() time.Time { return time.Now().UTC() },
		rnd:   analytics.DefaultRandom(),
		newID: func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
