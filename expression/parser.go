/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

const (
	// Expressions are enclosed between "#{" and "}".
	exprStart = "#{"
	exprEnd   = "}"

	// envVariable is the CEL variable holding the environment properties.
	envVariable = "env"
)

// ErrNestedExpression is returned when an expression contains another
// expression outside a string literal.
var ErrNestedExpression = errors.New("nested expressions are not allowed unless inside string literals")

// ErrUnterminatedExpression is returned when "#{" has no matching "}".
var ErrUnterminatedExpression = errors.New("unterminated expression")

// HasExpression reports whether s contains expression syntax.
func HasExpression(s string) bool {
	return strings.Contains(s, exprStart)
}

// TemplateParser parses templates mixing fixed text with CEL expressions in
// #{...} blocks. Expressions see the environment properties as the map
// variable env:
//
//	#{env['env.prefix']}_orders
//	orders_#{has(env.region) ? env.region : 'global'}
type TemplateParser struct {
	env *cel.Env
}

// NewTemplateParser creates a parser with the standard CEL environment.
func NewTemplateParser() (*TemplateParser, error) {
	env, err := cel.NewEnv(
		cel.Variable(envVariable, cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating CEL env: %w", err)
	}
	return &TemplateParser{env: env}, nil
}

// Parse compiles raw. Templates without expressions become literals.
func (p *TemplateParser) Parse(raw string) (Expression, error) {
	var segments []segment
	for i := 0; i < len(raw); {
		j := strings.Index(raw[i:], exprStart)
		if j == -1 {
			segments = append(segments, segment{text: raw[i:]})
			break
		}
		start := i + j
		if start > i {
			segments = append(segments, segment{text: raw[i:start]})
		}

		src, next, err := scanExpression(raw, start)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", raw, err)
		}
		if strings.TrimSpace(src) == "" {
			return nil, fmt.Errorf("parsing %q: empty expression", raw)
		}

		ast, issues := p.env.Compile(src)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("compiling %q: %w", src, issues.Err())
		}
		prog, err := p.env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("building program %q: %w", src, err)
		}
		segments = append(segments, segment{source: src, prog: prog})
		i = next
	}

	for _, seg := range segments {
		if seg.prog != nil {
			return &template{raw: raw, segments: segments}, nil
		}
	}
	return literal(raw), nil
}

// scanExpression scans a single expression starting at the given "#{"
// position. It returns the expression contents and the index to continue
// scanning from.
func scanExpression(str string, startIdx int) (string, int, error) {
	endIdx := startIdx + len(exprStart)
	braces := 1
	var quote byte
	escape := false

	for endIdx < len(str) {
		ch := str[endIdx]

		if escape {
			escape = false
			endIdx++
			continue
		}

		if quote == 0 && strings.HasPrefix(str[endIdx:], exprStart) {
			return "", 0, ErrNestedExpression
		}

		if quote != 0 {
			switch ch {
			case '\\':
				escape = true
			case quote:
				quote = 0
			}
			endIdx++
			continue
		}

		switch ch {
		case '"', '\'':
			quote = ch
		case '{':
			braces++
		case '}':
			braces--
			if braces == 0 {
				return str[startIdx+len(exprStart) : endIdx], endIdx + 1, nil
			}
		}
		endIdx++
	}

	return "", 0, ErrUnterminatedExpression
}
