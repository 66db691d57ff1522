package trending

import "fmt"

// LoadError reports an invalid trending-skill table.
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("trending load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("trending load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
