package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Business-rule sentinels for the submission pipeline. Each maps to a
// specific user-facing rejection; handlers and tests branch on these with
// errors.Is instead of matching message substrings.
var (
	ErrDuplicateURL      = errors.New("a launched project with this website already exists")
	ErrLaunchLimit       = errors.New("daily launch limit reached")
	ErrDeletionCooldown  = errors.New("this website was recently deleted and cannot be relaunched yet")
	ErrProfileIncomplete = errors.New("profile is incomplete")
	ErrSlugExhausted     = errors.New("could not find a unique slug")
	ErrUsernameRateLimit = errors.New("username was changed too recently")
	ErrUploadFailed      = errors.New("media upload failed")
	ErrGenerationFailed  = errors.New("launch data generation failed")
)

func NewDuplicateURLError(normalizedURL string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDuplicateURL,
		Details:    fmt.Sprintf("A launched project already uses %s", normalizedURL),
		Field:      "website_url",
	}
}

func NewLaunchLimitError(window time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrLaunchLimit,
		Details:    fmt.Sprintf("You can launch at most one project every %s", humanDuration(window)),
	}
}

// humanDuration renders whole-hour windows as "24 hours" rather than the
// Duration default "24h0m0s". Anything else keeps the default form.
func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}

func NewDeletionCooldownError(eligibleAt time.Time) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDeletionCooldown,
		Details:    fmt.Sprintf("This URL becomes eligible for relaunch at %s", eligibleAt.UTC().Format(time.RFC3339)),
		Field:      "website_url",
	}
}

func NewProfileIncompleteError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrProfileIncomplete,
		Details:    "Add your name, location and at least one social link before launching",
	}
}

func NewUsernameRateLimitError(nextAllowed time.Time) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrUsernameRateLimit,
		Details:    fmt.Sprintf("Next change allowed at %s", nextAllowed.UTC().Format(time.RFC3339)),
		Field:      "username",
	}
}

func NewUploadError(kind string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("Failed to persist %s media", kind),
		Cause:      cause,
	}
}

func IsDuplicateURL(err error) bool {
	return errors.Is(err, ErrDuplicateURL)
}

func IsLaunchLimit(err error) bool {
	return errors.Is(err, ErrLaunchLimit)
}

func IsDeletionCooldown(err error) bool {
	return errors.Is(err, ErrDeletionCooldown)
}

func IsProfileIncomplete(err error) bool {
	return errors.Is(err, ErrProfileIncomplete)
}

func IsSlugExhausted(err error) bool {
	return errors.Is(err, ErrSlugExhausted)
}

func IsUsernameRateLimit(err error) bool {
	return errors.Is(err, ErrUsernameRateLimit)
}
