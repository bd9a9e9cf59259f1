/*
Package environment provides the property sources used to resolve table-name
templates.

An Environment is a read-only view over key/value properties. Map, OS and
DotEnv supply the common sources and Layered combines them so that the first
source defining a key wins:

	dotenv, err := environment.DotEnv(".env")
	env := environment.Layered(
	    environment.Map{"env.prefix": "eu"},
	    dotenv,
	    environment.OS(),
	)

	name := environment.ResolvePlaceholders(env, "${env.prefix}_orders") // "eu_orders"

Placeholders take the form ${key} or ${key:default}. Undefined keys without a
default are left untouched so that later stages can still see them.
*/
package environment
