package core

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

// DeepCopyOptions returns a deep copy of the provided options map so that
// mutating one series' options never leaks into another.
//
// If the underlying copy cannot be asserted back to Options an error is
// returned.
func DeepCopyOptions(o Options) (Options, error) {
	if o == nil {
		return Options{}, nil
	}
	copiedInterface := deepcopy.Copy(map[string]any(o))
	copied, ok := copiedInterface.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to copy options map")
	}
	return Options(copied), nil
}
