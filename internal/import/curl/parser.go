// Package curl turns a pasted curl command back into a request.
package curl

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sadopc/nanoman/internal/protocol"
)

// ParseCurl parses a curl command string into a request. Flags that do
// not change the request (-s, -L, -k, ...) are ignored.
func ParseCurl(input string) (protocol.Request, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return protocol.Request{}, fmt.Errorf("empty input")
	}

	// Handle line continuations
	input = strings.ReplaceAll(input, "\\\r\n", " ")
	input = strings.ReplaceAll(input, "\\\n", " ")

	args := tokenize(input)
	if len(args) == 0 {
		return protocol.Request{}, fmt.Errorf("empty command")
	}

	// Strip leading "curl" if present
	if strings.EqualFold(args[0], "curl") {
		args = args[1:]
	}

	req := protocol.Request{Method: protocol.MethodGET}
	explicitMethod := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-X", "--request":
			i++
			if i < len(args) {
				m, err := protocol.ParseMethod(args[i])
				if err != nil {
					return protocol.Request{}, err
				}
				req.Method = m
				explicitMethod = true
			}
		case "-H", "--header":
			i++
			if i < len(args) {
				if name, value, ok := parseHeader(args[i]); ok {
					req.Headers = append(req.Headers, protocol.Header{Name: name, Value: value})
				}
			}
		case "-d", "--data", "--data-raw", "--data-binary", "--data-ascii":
			i++
			if i < len(args) {
				body := args[i]
				if req.Body != nil {
					// curl joins repeated -d values with '&'.
					body = *req.Body + "&" + body
				}
				req.Body = &body
				if !explicitMethod {
					req.Method = protocol.MethodPOST
				}
			}
		case "-u", "--user":
			i++
			if i < len(args) {
				token := base64.StdEncoding.EncodeToString([]byte(args[i]))
				req.Headers = append(req.Headers, protocol.Header{Name: "Authorization", Value: "Basic " + token})
			}
		case "-A", "--user-agent":
			i++
			if i < len(args) {
				req.Headers = append(req.Headers, protocol.Header{Name: "User-Agent", Value: args[i]})
			}
		case "-e", "--referer":
			i++
			if i < len(args) {
				req.Headers = append(req.Headers, protocol.Header{Name: "Referer", Value: args[i]})
			}
		case "--url":
			i++
			if i < len(args) && req.URL == "" {
				req.URL = args[i]
			}
		case "-o", "--output", "-m", "--max-time", "--connect-timeout":
			i++ // flags with a value that does not affect the request
		default:
			// Positional argument = URL
			if !strings.HasPrefix(arg, "-") && req.URL == "" {
				req.URL = arg
			}
		}
	}

	if req.URL == "" {
		return protocol.Request{}, fmt.Errorf("no URL found in curl command")
	}

	return req, nil
}

// tokenize splits a shell command into tokens, handling single and double quotes.
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	escaped := false
	// quoted marks a token that exists even if empty, e.g. ''.
	quoted := false

	for _, r := range input {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		if r == '\\' && !inSingle {
			escaped = true
			continue
		}

		if r == '\'' && !inDouble {
			inSingle = !inSingle
			quoted = true
			continue
		}

		if r == '"' && !inSingle {
			inDouble = !inDouble
			quoted = true
			continue
		}

		if (r == ' ' || r == '\t' || r == '\n') && !inSingle && !inDouble {
			if current.Len() > 0 || quoted {
				tokens = append(tokens, current.String())
				current.Reset()
				quoted = false
			}
			continue
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 || quoted {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// parseHeader parses "Key: Value" into key and value.
func parseHeader(s string) (string, string, bool) {
	name, value, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}
