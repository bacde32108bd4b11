package digest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plate/internal/core/ports"
)

// NodeID is the unique identifier for the key builder Graft node.
const NodeID graft.ID = "adapter.digest"

func init() {
	graft.Register(graft.Node[ports.KeyBuilder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.KeyBuilder, error) {
			return NewBuilder(), nil
		},
	})
}
