// Package di wires the generator's collaborators through a samber/do
// container so commands and tests can swap implementations.
package di

import (
	"fmt"

	"github.com/samber/do/v2"
)

// Injector aliases the do injector type used across providers and resolvers.
type Injector = do.Injector

// Module registers one or more dependencies with the injector.
type Module func(Injector) error

// Runtime owns a dependency container assembled from modules.
type Runtime struct {
	modules []Module
}

// New constructs a runtime from the given modules. Modules run lazily on the
// first Invoke so construction never fails.
func New(modules ...Module) *Runtime {
	return &Runtime{modules: modules}
}

// Invoke builds a fresh injector, applies every module, and runs the handler
// against it. The injector is shut down when the handler returns.
func (r *Runtime) Invoke(handler func(Injector) error) error {
	injector := do.New()

	defer func() {
		_ = injector.Shutdown()
	}()

	for _, module := range r.modules {
		err := module(injector)
		if err != nil {
			return fmt.Errorf("registering dependencies: %w", err)
		}
	}

	return handler(injector)
}
