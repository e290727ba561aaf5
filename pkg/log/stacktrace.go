package log

import (
	"github.com/cockroachdb/errors"
)

// extractStacktrace returns the first stack trace recorded in err's chain
// by cockroachdb/errors, or "" when none was recorded.
func extractStacktrace(err error) string {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		if details := errors.GetSafeDetails(e).SafeDetails; len(details) > 0 && details[0] != "" {
			return details[0]
		}
	}
	return ""
}
