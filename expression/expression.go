/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expression

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/suparena/entitymeta/environment"
)

// Expression is a parsed table-name template.
type Expression interface {
	// Literal reports whether the template contains no evaluable parts.
	Literal() bool
	// Evaluate renders the template against env. A nil env evaluates with
	// no properties.
	Evaluate(env environment.Environment) (string, error)
	// String returns the raw template.
	String() string
}

// Parser turns raw template strings into expressions.
type Parser interface {
	Parse(raw string) (Expression, error)
}

type literal string

func (l literal) Literal() bool { return true }

func (l literal) Evaluate(environment.Environment) (string, error) { return string(l), nil }

func (l literal) String() string { return string(l) }

// segment is either fixed text or a compiled expression.
type segment struct {
	text   string
	source string
	prog   cel.Program
}

type template struct {
	raw      string
	segments []segment
}

func (t *template) Literal() bool { return false }

func (t *template) String() string { return t.raw }

func (t *template) Evaluate(env environment.Environment) (string, error) {
	props := map[string]string{}
	if env != nil {
		if p := env.Properties(); p != nil {
			props = p
		}
	}
	activation := map[string]any{envVariable: props}

	var b strings.Builder
	for _, seg := range t.segments {
		if seg.prog == nil {
			b.WriteString(seg.text)
			continue
		}
		out, _, err := seg.prog.Eval(activation)
		if err != nil {
			return "", fmt.Errorf("evaluating %q: %w", seg.source, err)
		}
		str := out.ConvertToType(types.StringType)
		if types.IsError(str) {
			return "", fmt.Errorf("evaluating %q: result of type %s is not convertible to string", seg.source, out.Type().TypeName())
		}
		s, ok := str.Value().(string)
		if !ok {
			return "", fmt.Errorf("evaluating %q: unexpected result %v", seg.source, str.Value())
		}
		b.WriteString(s)
	}
	return b.String(), nil
}
