package sound

import "github.com/rs/xid"

// UID is a unique identifier of a graph component. It is used to tell apart
// otherwise identical nodes in logs and graph dumps.
type UID string

// NewUID returns a new unique id value.
func NewUID() UID {
	return UID(xid.New().String())
}

// ID returns id value.
func (id UID) ID() string {
	return string(id)
}
