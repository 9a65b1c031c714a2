package circuit

import (
	"fmt"

	cerrors "github.com/renatogeh/logiccircuits/pkg/errors"
)

// NewUnknownNodeError reports that a NodeID was used that the Builder never
// allocated.
func NewUnknownNodeError(id NodeID) *cerrors.CircuitError {
	return cerrors.NewParseError(fmt.Sprintf("unknown node id %d", id))
}
