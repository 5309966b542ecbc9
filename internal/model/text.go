package model

import "strings"

// text returns the trimmed value of a present string field.  Surrounding
// whitespace is never stored.
func text(s *string) string { return strings.TrimSpace(*s) }
