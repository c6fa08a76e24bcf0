package gitlab

import (
	"fmt"
	"strings"
)

// APIError is a non-2xx HTTP response from the GitLab API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Body)
}

// GraphQLError is a response carrying a top-level errors array. The HTTP
// exchange succeeded; the query itself was rejected.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("GraphQL error: %s", strings.Join(e.Messages, "; "))
}

// DecodeError is a response body that could not be parsed into the expected
// shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
