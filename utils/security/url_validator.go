package security

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// MaxURLLength bounds externally supplied URLs.
const MaxURLLength = 2048

// ValidationError represents a validation error with context
type ValidationError struct {
	Message string
	Type    string
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(false),
	idna.Transitional(false),
)

// ParseSafeURL validates the shape of an externally supplied URL and returns
// a normalized copy. It performs no I/O.
func ParseSafeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, invalid("EMPTY_URL", "URL must not be empty", nil)
	}
	if len(raw) > MaxURLLength {
		return nil, invalid("URL_TOO_LONG", fmt.Sprintf("URL exceeds %d bytes", MaxURLLength), map[string]interface{}{"length": len(raw)})
	}
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c < 0x20 || c == 0x7f {
			return nil, invalid("CONTROL_CHARACTER", "URL contains control characters", map[string]interface{}{"offset": i})
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, invalid("PARSE_ERROR", "URL could not be parsed", map[string]interface{}{"error": err.Error()})
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, invalid("SCHEME_VALIDATION_ERROR", "only HTTP and HTTPS schemes allowed", map[string]interface{}{"scheme": u.Scheme})
	}
	if u.Opaque != "" {
		return nil, invalid("BASIC_VALIDATION_ERROR", "URL must be hierarchical", nil)
	}
	if u.User != nil {
		return nil, invalid("CREDENTIALS_BLOCKED", "URL must not embed credentials", nil)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return nil, invalid("BASIC_VALIDATION_ERROR", "empty host not allowed", nil)
	}

	port := u.Port()
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return nil, invalid("PORT_VALIDATION_ERROR", "invalid port", map[string]interface{}{"port": port})
		}
	} else if strings.HasSuffix(u.Host, ":") {
		return nil, invalid("PORT_VALIDATION_ERROR", "invalid port", map[string]interface{}{"port": ""})
	}

	normalizedHost, err := normalizeHostname(hostname)
	if err != nil {
		return nil, invalid("PUNYCODE_VALIDATION_ERROR", "invalid internationalized domain name", map[string]interface{}{"hostname": hostname})
	}

	out := *u
	out.Scheme = scheme
	out.Fragment = ""
	out.RawFragment = ""
	if strings.Contains(normalizedHost, ":") {
		normalizedHost = "[" + normalizedHost + "]"
	}
	if port != "" {
		out.Host = normalizedHost + ":" + port
	} else {
		out.Host = normalizedHost
	}
	return &out, nil
}

func normalizeHostname(hostname string) (string, error) {
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.String(), nil
	}
	if strings.ContainsAny(hostname, "%:") {
		return "", fmt.Errorf("malformed host %q", hostname)
	}
	ascii, err := hostProfile.ToASCII(norm.NFKC.String(hostname))
	if err != nil {
		return "", err
	}
	ascii = strings.TrimSuffix(strings.ToLower(ascii), ".")
	if ascii == "" {
		return "", fmt.Errorf("empty hostname")
	}
	return ascii, nil
}

func invalid(kind, message string, details map[string]interface{}) *ValidationError {
	return &ValidationError{Type: kind, Message: message, Details: details}
}
