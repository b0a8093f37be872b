package svgoptimize

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"
)

const (
	dataURIBase64 = "base64"
	dataURIEnc    = "enc"
	dataURIUnenc  = "unenc"
)

const dataURIPrefix = "data:image/svg+xml"

// EncodeDataURI wraps svg in a data URI. mode is one of
// "base64" (the default when empty), "enc" or "unenc".
func EncodeDataURI(svg, mode string) string {
	switch mode {
	case dataURIEnc:
		return dataURIPrefix + "," + encodeURIComponent(svg)
	case dataURIUnenc:
		return dataURIPrefix + "," + svg
	default:
		return dataURIPrefix + ";base64," + base64.StdEncoding.EncodeToString([]byte(svg))
	}
}

var regDataURI = regexp.MustCompile(`(?s)data:image/svg\+xml(;charset=[^,;]*)?(;base64)?,(.*)`)

// DecodeDataURI reverses EncodeDataURI. Other strings are returned
// unchanged.
func DecodeDataURI(s string) string {
	match := regDataURI.FindStringSubmatch(s)
	if match == nil {
		return s
	}
	data := match[3]
	switch {
	case match[2] != "":
		if decoded, err := base64.StdEncoding.DecodeString(data); err == nil {
			return string(decoded)
		}
	case strings.HasPrefix(data, "%"):
		if decoded, err := url.PathUnescape(data); err == nil {
			return decoded
		}
	case strings.HasPrefix(data, "<"):
		return data
	}
	return s
}

const upperHex = "0123456789ABCDEF"

// encodeURIComponent escapes all bytes except the
// unreserved characters A-Z a-z 0-9 - _ . ! ~ * ' ( )
func encodeURIComponent(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			strings.IndexByte("-_.!~*'()", c) != -1:
			sb.WriteByte(c)
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperHex[c>>4])
			sb.WriteByte(upperHex[c&15])
		}
	}
	return sb.String()
}
