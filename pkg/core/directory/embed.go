package directory

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// EmbedZoom is the zoom level used for coordinate-centred previews
const EmbedZoom = 14

const mapsBaseURL = "https://www.google.com/maps"

var (
	pathCoordinates  = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	queryCoordinates = regexp.MustCompile(`(-?\d+\.\d+),\s*(-?\d+\.\d+)`)
)

// ToEmbedURL turns a user-supplied map link into a URL suitable for an inline
// preview. Rules are tried in order and anything unrecognised, including input
// that is not a URL at all, becomes a text search for the raw input.
// A blank link has no preview and yields "".
func ToEmbedURL(rawLink string) string {
	raw := strings.TrimSpace(rawLink)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return searchEmbed(raw)
	}

	path := u.EscapedPath()
	host := strings.ToLower(u.Hostname())

	if strings.Contains(path, "/maps/embed") {
		return raw
	}

	if m := pathCoordinates.FindStringSubmatch(path); m != nil {
		return coordinatesEmbed(m[1], m[2])
	}

	// Short links only resolve with a network round trip, so search for the link itself
	if strings.Contains(host, "maps.app.goo.gl") || host == "goo.gl" {
		return searchEmbed(raw)
	}

	if strings.Contains(host, "google") {
		params := u.Query()
		for _, key := range []string{"q", "query"} {
			values, ok := params[key]
			if !ok {
				continue
			}
			value := ""
			if len(values) > 0 {
				value = values[0]
			}
			if m := queryCoordinates.FindStringSubmatch(value); m != nil {
				return coordinatesEmbed(m[1], m[2])
			}
			return searchEmbed(value)
		}
	}

	if _, rest, found := strings.Cut(path, "/place/"); found {
		name, _, _ := strings.Cut(rest, "/")
		if name != "" {
			decoded, err := url.PathUnescape(name)
			if err != nil {
				return searchEmbed(raw)
			}
			return searchEmbed(decoded)
		}
	}

	return searchEmbed(raw)
}

func searchEmbed(q string) string {
	return fmt.Sprintf("%s?q=%s&output=embed", mapsBaseURL, encodeURIComponent(q))
}

func coordinatesEmbed(lat, lng string) string {
	return fmt.Sprintf("%s?q=%s,%s&ll=%s,%s&z=%d&output=embed", mapsBaseURL, lat, lng, lat, lng, EmbedZoom)
}

// encodeURIComponent escapes everything except the characters browsers leave
// untouched in a URI component: letters, digits and - _ . ! ~ * ' ( )
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isComponentSafe(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0F])
	}
	return sb.String()
}

func isComponentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
