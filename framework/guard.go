package framework

import (
	"fmt"
	"runtime/debug"
)

// Guard runs action and converts a panic inside it into an error, so that the caller can
// record the failure and move on.
func Guard(action func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected panic: %+v\n%s", r, string(debug.Stack()))
		}
	}()
	action()
	return nil
}
