package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plate/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/adapters/digest"    //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/adapters/document"  //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			digest.NodeID,
			shell.NodeID,
			document.NodeID,
			watcher.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	keys, err := graft.Dep[ports.KeyBuilder](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.ProcessRunner](ctx)
	if err != nil {
		return nil, err
	}

	scanner, err := graft.Dep[ports.DocumentScanner](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, keys, runner, scanner, w, tracer, log), nil
}
