package patterns

import "fmt"

// RuleError reports a rule that failed validation or did not compile.
type RuleError struct {
	Industry string
	Rule     string
	Message  string
	Cause    error
}

func (e *RuleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pattern rule error [%s/%s]: %s: %v", e.Industry, e.Rule, e.Message, e.Cause)
	}
	return fmt.Sprintf("pattern rule error [%s/%s]: %s", e.Industry, e.Rule, e.Message)
}

func (e *RuleError) Unwrap() error {
	return e.Cause
}
