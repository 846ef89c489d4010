package highlight

import (
	"bytes"
	"mime"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: false,
}

// IsJSONContentType reports whether a Content-Type header denotes JSON,
// including suffixed types such as application/problem+json.
func IsJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mediaType == "application/json" ||
		mediaType == "text/json" ||
		strings.HasSuffix(mediaType, "+json")
}

// LooksJSON is the fallback heuristic for bodies without a JSON content
// type: the first non-space byte opens an object or array.
func LooksJSON(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// Format pretty-prints body when it is valid JSON and returns it unchanged
// otherwise.
func Format(body []byte) []byte {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return body
	}
	return bytes.TrimRight(pretty.PrettyOptions(body, prettyOptions), "\n")
}
