/*
Package resolver turns a data-model type description into EntityMetadata.

Resolution runs once per type at bootstrap and performs three steps:

 1. ResolveIDField selects the single key field from the id markers, checks
    that its type maps to a wire type and that generation, if requested, is
    possible for that wire type.
 2. ResolveTableName substitutes ${...} placeholders from the environment and
    evaluates #{...} expressions through a shared caching parser.
 3. ResolveTableConfig validates consistency, durability and timeout and
    captures the declared capacity.

Capacity defaults are applied only when limits are requested:

	md, err := resolver.For[Order](
	    resolver.WithEnvironment(environment.Map{"env.prefix": "eu"}),
	)
	limits, ok := md.TableLimits(storeConfig)

All validation failures match errors.ErrInvalidMetadata and a specific
sentinel such as errors.ErrMissingIDField. Resolver defects match
errors.ErrInternal instead.
*/
package resolver
