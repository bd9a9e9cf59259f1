/*
Package expression parses and evaluates table-name templates.

Templates mix fixed text with CEL expressions enclosed in #{...}. Each
expression is evaluated against the map variable env, built from the
environment properties on every evaluation, and its result is converted to a
string:

	p, err := expression.NewTemplateParser()
	expr, err := p.Parse("#{env['env.prefix']}_orders")
	name, err := expr.Evaluate(environment.Map{"env.prefix": "eu"}) // "eu_orders"

CachingParser memoizes parsed templates by their raw string. Default returns a
shared instance that resolvers use unless given another parser.
*/
package expression
