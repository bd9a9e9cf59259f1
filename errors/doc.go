/*
Package errors provides semantic error types for entity metadata resolution and
the datastores built on top of it.

Validation failures are reported as *MetadataError values. Each one matches the
sentinel for its kind and the umbrella ErrInvalidMetadata:

	meta, err := resolver.Resolve(desc)
	if err != nil {
	    if errors.Is(err, errors.ErrConflictingIDMarkers) {
	        // both a generic and a store-specific id marker were declared
	    }
	    return err
	}

Resolver defects (for example a key type reaching the type mapper without having
been validated) are reported as *InternalError, which matches ErrInternal only, so
callers and logs can tell them apart from bad user input:

	if errors.IsInternal(err) {
	    log.Error("resolver bug", "err", err)
	}

Datastore errors:

	var (
	    ErrNotFound      = errors.New("entity not found")
	    ErrAlreadyExists = errors.New("entity already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	)

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
