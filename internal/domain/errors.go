package domain

import (
	"errors"
	"fmt"
)

// ExitError carries a failed tool's exit status so the CLI can hand the
// first nonzero code back to the shell.
type ExitError struct {
	Tool string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// ExitCodeOf maps err to a process exit code: 0 for nil, the code of the
// first wrapped ExitError, 1 for anything else.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var xe *ExitError
	if errors.As(err, &xe) && xe.Code != 0 {
		return xe.Code
	}
	return 1
}
