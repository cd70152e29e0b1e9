// Package federation holds the ActivityPub-facing pieces: actor URI
// validation for inbound federated follows and the actor/webfinger document
// builders served to remote instances.
package federation

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrNotAbsolute    = errors.New("actor id is not an absolute URL")
	ErrInsecureScheme = errors.New("actor id must use https")
	ErrBadHost        = errors.New("actor id host is missing or too short")
	ErrBadPath        = errors.New("actor id path is missing")
)

// IsAbsoluteURL reports whether raw parses as an absolute URL with a host.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}

// ValidateActorURI checks that raw is a plausible ActivityPub actor id:
// absolute https URL, hostname of at least 3 characters, and a non-root path
// (actor ids always address a specific resource, never a bare origin).
func ValidateActorURI(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse actor id: %w", err)
	}
	if !u.IsAbs() {
		return ErrNotAbsolute
	}
	if u.Scheme != "https" {
		return ErrInsecureScheme
	}
	if len(u.Hostname()) < 3 {
		return ErrBadHost
	}
	if u.Path == "" || u.Path == "/" {
		return ErrBadPath
	}
	return nil
}
