// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// document.go implements splicing of top-level declarations inside the
// textual content document. A declaration's value is located by a fixed
// marker and delimited by bracket counting that is aware of quoted strings
// and escape sequences, so nested arrays inside records (a stage's image
// list, a URL containing "[]") never truncate the span. Everything outside
// the replaced span survives byte-for-byte.
package content

import (
	"fmt"
	"regexp"
)

// Declaration markers for the two entity arrays and the configuration
// record. The document keeps the layout of the production content repo.
var (
	projectsMarker   = regexp.MustCompile(`export const projects: \w+\[\] = `)
	categoriesMarker = regexp.MustCompile(`export const categories: \w+\[\] = `)
	siteConfigMarker = regexp.MustCompile(`export const siteConfig: \w+ = `)
)

// valueSpan returns the [start, end) byte span of the bracketed value that
// follows the marker, where open/close are the delimiter pair ('[' and ']'
// for arrays, '{' and '}' for records).
func valueSpan(doc []byte, marker *regexp.Regexp, open, close byte) (int, int, error) {
	loc := marker.FindIndex(doc)
	if loc == nil {
		return 0, 0, fmt.Errorf("declaration %q not found in document", marker.String())
	}

	start := loc[1]
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(doc); i++ {
		ch := doc[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == open {
			depth++
		}
		if ch == close {
			depth--
			if depth == 0 {
				return start, i + 1, nil
			}
		}
	}

	return 0, 0, fmt.Errorf("unbalanced %c%c value after %q", open, close, marker.String())
}

// extractValue returns the raw bytes of the declaration's value.
func extractValue(doc []byte, marker *regexp.Regexp, open, close byte) ([]byte, error) {
	start, end, err := valueSpan(doc, marker, open, close)
	if err != nil {
		return nil, err
	}
	return doc[start:end], nil
}

// spliceValue replaces exactly the declaration's value span, leaving the
// rest of the document untouched.
func spliceValue(doc []byte, marker *regexp.Regexp, open, close byte, replacement []byte) ([]byte, error) {
	start, end, err := valueSpan(doc, marker, open, close)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(doc)-(end-start)+len(replacement))
	out = append(out, doc[:start]...)
	out = append(out, replacement...)
	out = append(out, doc[end:]...)
	return out, nil
}
