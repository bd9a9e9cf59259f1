/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expression

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachingParser memoizes another Parser by raw template string. It is safe
// for concurrent use; concurrent first requests for the same string share a
// single parse. Parse failures are not cached.
type CachingParser struct {
	delegate Parser
	logger   *slog.Logger

	cache sync.Map // raw string -> Expression
	sf    singleflight.Group
}

// NewCachingParser wraps delegate. A nil logger uses slog.Default().
func NewCachingParser(delegate Parser, logger *slog.Logger) *CachingParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingParser{delegate: delegate, logger: logger}
}

// Parse returns the cached expression for raw, parsing it on first use.
func (c *CachingParser) Parse(raw string) (Expression, error) {
	if cached, ok := c.cache.Load(raw); ok {
		return cached.(Expression), nil
	}

	v, err, _ := c.sf.Do(raw, func() (any, error) {
		// A flight that finished just before this one started has already stored it.
		if cached, ok := c.cache.Load(raw); ok {
			return cached, nil
		}
		c.logger.Debug("expression cache miss", slog.String("template", raw))
		expr, err := c.delegate.Parse(raw)
		if err != nil {
			return nil, err
		}
		c.cache.Store(raw, expr)
		return expr, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Expression), nil
}

// Len returns the number of cached expressions.
func (c *CachingParser) Len() int {
	n := 0
	c.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

var shared = sync.OnceValue(func() *CachingParser {
	p, err := NewTemplateParser()
	if err != nil {
		panic(err)
	}
	return NewCachingParser(p, nil)
})

// Default returns the process-wide caching parser shared by resolvers that
// are not given one explicitly.
func Default() *CachingParser {
	return shared()
}
