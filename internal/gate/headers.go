package gate

import "net/http"

// HeaderPairs is an ordered list of name/value pairs, the third header shape
// hosts hand us besides http.Header and a plain map.
type HeaderPairs [][2]string

// Canonicalize merges any supported header shape into one canonical
// http.Header. Supported inputs: nil, http.Header, map[string]string,
// map[string][]string, and HeaderPairs (or a raw [][2]string). Repeated
// names accumulate values instead of clobbering earlier ones. Unsupported
// shapes yield an empty header set rather than a panic.
func Canonicalize(headers any) http.Header {
	out := make(http.Header)
	switch h := headers.(type) {
	case nil:
	case http.Header:
		for name, values := range h {
			for _, v := range values {
				out.Add(name, v)
			}
		}
	case map[string][]string:
		for name, values := range h {
			for _, v := range values {
				out.Add(name, v)
			}
		}
	case map[string]string:
		for name, v := range h {
			out.Add(name, v)
		}
	case HeaderPairs:
		for _, pair := range h {
			out.Add(pair[0], pair[1])
		}
	case [][2]string:
		for _, pair := range h {
			out.Add(pair[0], pair[1])
		}
	}
	return out
}
