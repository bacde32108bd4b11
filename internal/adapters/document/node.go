package document

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plate/internal/core/ports"
)

// NodeID is the unique identifier for the document scanner Graft node.
const NodeID graft.ID = "adapter.document_scanner"

func init() {
	graft.Register(graft.Node[ports.DocumentScanner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DocumentScanner, error) {
			return NewScanner(), nil
		},
	})
}
