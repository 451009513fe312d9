package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dantsyura/nexus-cli/internal/common"
)

// userMessage turns the client error taxonomy into a short human-readable
// line. Unrecognized errors pass through verbatim.
func userMessage(err error) string {
	var se *common.ServerError
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, common.ErrNotLoggedIn):
		return "not logged in"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	case errors.Is(err, common.ErrNetwork):
		return "server unreachable, please try again"
	case errors.Is(err, common.ErrDecode):
		return "unexpected server response"
	case errors.As(err, &se):
		return fmt.Sprintf("server error (%d), please try again", se.Code)
	default:
		return err.Error()
	}
}

// parseID extracts a positive numeric id from the first command argument.
func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// splitTags parses a comma-separated tag list into trimmed, non-empty tags.
func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
