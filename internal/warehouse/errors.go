package warehouse

import "fmt"

// ConnectionError is raised when the warehouse connection cannot be
// established. Fatal; there is no retry.
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("warehouse connection: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// QueryError is raised when the warehouse rejects or fails a query. The
// active transaction has been rolled back by the time it is returned and
// the connection remains usable.
type QueryError struct {
	Query string
	Cause error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query execution failed: %v", e.Cause)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}

// CatalogError is raised when a catalog lookup itself fails. Kept
// distinct from QueryError so a broken information_schema never masks
// the outcome of the user's query.
type CatalogError struct {
	Object string
	Cause  error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog lookup for %s: %v", e.Object, e.Cause)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}
