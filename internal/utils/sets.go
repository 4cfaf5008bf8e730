package utils

// AddToSet appends v to s when absent, preserving order.
func AddToSet(s []string, v string) []string {
	for _, e := range s {
		if e == v {
			return s
		}
	}
	return append(s, v)
}

// RemoveFromSet removes every occurrence of v from s, preserving order.
func RemoveFromSet(s []string, v string) []string {
	out := s[:0]
	for _, e := range s {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether v is present in s.
func Contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
