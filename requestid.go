package graphql

import (
	"github.com/google/uuid"
)

// RequestIDKey is the well-known ScopedMap global key every request's
// correlation ID is published under (SPEC_FULL.md §10.6), adopted from the
// anujdecoder-Jaal pack repo's use of google/uuid for entity identifiers and
// repurposed here for per-request correlation.
const RequestIDKey = "graphql.requestID"

// AssignRequestID publishes supplied (or a fresh UUID when supplied is empty)
// under RequestIDKey in scope and returns it. Execute and Subscribe always
// call it before any field resolves, passing the request's "requestId"
// extension entry as supplied.
func AssignRequestID(scope *ScopedMap, supplied string) string {
	id := supplied
	if id == "" {
		id = uuid.NewString()
	}
	scope.SetGlobal(RequestIDKey, id)
	return id
}
