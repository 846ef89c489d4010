package export

import (
	"strings"

	"github.com/sadopc/nanoman/internal/protocol"
)

// AsCurl converts a request to a curl command string.
func AsCurl(req protocol.Request) string {
	parts := []string{"curl"}

	// Method
	if req.Method != "" && req.Method != protocol.MethodGET {
		parts = append(parts, "-X", string(req.Method))
	}

	// Headers, in order, duplicates kept
	for _, h := range req.Headers {
		parts = append(parts, "-H", quote(h.Name+": "+h.Value))
	}

	// Body
	if req.Body != nil {
		parts = append(parts, "--data-raw", quote(*req.Body))
	}

	parts = append(parts, quote(req.URL))
	return strings.Join(parts, " ")
}

// quote wraps s in single quotes for a POSIX shell.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
