/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package environment

import "strings"

const (
	placeholderStart = "${"
	placeholderEnd   = "}"
	defaultSeparator = ":"

	// maxDepth bounds recursive resolution of placeholder values, which stops
	// self-referencing properties from looping.
	maxDepth = 16
)

// ResolvePlaceholders substitutes ${key} and ${key:default} tokens in s with
// values from env. Values are themselves resolved. Tokens whose key is not
// defined and that carry no default are left in place. A nil env returns s
// unchanged.
func ResolvePlaceholders(env Environment, s string) string {
	if env == nil || !strings.Contains(s, placeholderStart) {
		return s
	}
	return resolve(env, s, 0)
}

func resolve(env Environment, s string, depth int) string {
	if depth >= maxDepth {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], placeholderStart)
		if j == -1 {
			b.WriteString(s[i:])
			break
		}
		start := i + j
		b.WriteString(s[i:start])

		body, next, ok := scanPlaceholder(s, start)
		if !ok {
			// Unterminated token, emit the rest verbatim.
			b.WriteString(s[start:])
			break
		}

		key, def, hasDefault := strings.Cut(body, defaultSeparator)
		key = resolve(env, key, depth+1)
		switch v, found := env.Lookup(key); {
		case found:
			b.WriteString(resolve(env, v, depth+1))
		case hasDefault:
			b.WriteString(resolve(env, def, depth+1))
		default:
			b.WriteString(s[start:next])
		}
		i = next
	}
	return b.String()
}

// scanPlaceholder returns the body of the token opening at start and the index
// following its closing brace. Nested tokens inside the body are balanced.
func scanPlaceholder(s string, start int) (string, int, bool) {
	depth := 1
	for k := start + len(placeholderStart); k < len(s); k++ {
		switch s[k] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start+len(placeholderStart) : k], k + 1, true
			}
		}
	}
	return "", 0, false
}
