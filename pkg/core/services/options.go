package services

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCodeLength  = 6
	DefaultMaxAttempts = 10
)

// CodeGenerator returns a random short code of the given length
type CodeGenerator func(length int) (string, error)

type options struct {
	now         func() time.Time
	newID       func() string
	generate    CodeGenerator
	codeLength  int
	maxAttempts int
}

type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		now:         time.Now,
		newID:       uuid.NewString,
		generate:    generateShortCode,
		codeLength:  DefaultCodeLength,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces the UUID generator used for link and event ids
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func WithCodeGenerator(g CodeGenerator) Option {
	return func(o *options) { o.generate = g }
}

func WithCodeLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.codeLength = n
		}
	}
}

// WithMaxAttempts bounds the retries spent on generated code collisions
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}
