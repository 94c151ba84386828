package service

import (
	"fmt"

	"github.com/maheshrc27/postdeck/internal/transfer"
)

// ValidationError covers missing or malformed caller input. Nothing is
// mutated before it is reported.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError is returned when the requested post does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Resource) }

// ConfigurationError means the Facebook access token is missing or still the
// placeholder. The affected post is marked failed before this is returned.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// UpstreamError covers storage and Graph API failures.
type UpstreamError struct {
	Op  string
	Msg string
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Msg) }

// AlreadyPublishedError is the idempotency guard: the post is already on
// Facebook and Result carries the existing id and permalink.
type AlreadyPublishedError struct {
	Result transfer.PublishResult
}

func (e *AlreadyPublishedError) Error() string {
	return "post has already been published to Facebook"
}
