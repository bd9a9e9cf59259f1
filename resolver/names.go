/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resolver

import (
	"reflect"
	"strings"

	"github.com/suparena/entitymeta/environment"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/expression"
	"github.com/suparena/entitymeta/storagemodels"
)

const (
	arraySuffix   = "_Array"
	nameSeparator = ":"
)

// DefaultTableName returns the simple name of t, or <Elem>_Array for slice
// and array types.
func DefaultTableName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	t = deref(t)
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		return simpleName(deref(t.Elem())) + arraySuffix
	}
	return simpleName(t)
}

// ResolveTableName computes the table name of entity from the template in
// opts. Errors name entity.
//
// An absent or empty template yields defaultName. Otherwise ${...}
// placeholders are substituted from env when env is non-nil, and #{...}
// expressions are parsed through parser and evaluated against env. The
// result is trimmed and a single leading ":" removed. A nil parser uses
// expression.Default().
func ResolveTableName(entity, defaultName string, opts *storagemodels.TableOptions, env environment.Environment, parser expression.Parser) (string, error) {
	if opts == nil || strings.TrimSpace(opts.TableName) == "" {
		return defaultName, nil
	}

	name := opts.TableName
	if env != nil && strings.Contains(name, "$") {
		name = environment.ResolvePlaceholders(env, name)
	}

	if expression.HasExpression(name) {
		if parser == nil {
			parser = expression.Default()
		}
		expr, err := parser.Parse(name)
		if err != nil {
			return "", errors.NewMetadataError(entity, errors.ErrInvalidTableName, "%v", err)
		}
		name, err = expr.Evaluate(env)
		if err != nil {
			return "", errors.NewMetadataError(entity, errors.ErrInvalidTableName, "%v", err)
		}
	}

	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, nameSeparator)
	if name == "" {
		return "", errors.NewMetadataError(entity, errors.ErrInvalidTableName,
			"template %q resolved to an empty name", opts.TableName)
	}
	return name, nil
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func simpleName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
