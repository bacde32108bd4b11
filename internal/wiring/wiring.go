// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/plate/internal/adapters/config"
	_ "go.trai.ch/plate/internal/adapters/digest"
	_ "go.trai.ch/plate/internal/adapters/document"
	_ "go.trai.ch/plate/internal/adapters/logger"
	_ "go.trai.ch/plate/internal/adapters/shell"
	_ "go.trai.ch/plate/internal/adapters/telemetry"
	_ "go.trai.ch/plate/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/plate/internal/app"
)
