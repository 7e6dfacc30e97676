// Package delivery defines the contract every transport-level server implements.
package delivery

import "context"

// Delivery is a long-running server (HTTP today) managed by the application container.
type Delivery interface {
	// Serve blocks, serving requests until the context is canceled or the
	// listener fails.
	Serve(ctx context.Context) error
}
