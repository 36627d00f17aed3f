package di

import (
	"fmt"

	"github.com/appupgen/appupgen/pkg/svc/artifact"
	"github.com/appupgen/appupgen/pkg/svc/plan"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Dependency resolvers.

// ResolveInspector retrieves the artifact inspector dependency from the
// injector with consistent error handling.
func ResolveInspector(injector Injector) (artifact.Inspector, error) {
	inspector, err := do.Invoke[artifact.Inspector](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve inspector dependency: %w", err)
	}

	return inspector, nil
}

// ResolveEmitter retrieves the plan emitter dependency from the injector
// with consistent error handling.
func ResolveEmitter(injector Injector) (*plan.Emitter, error) {
	emitter, err := do.Invoke[*plan.Emitter](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve emitter dependency: %w", err)
	}

	return emitter, nil
}

// ResolveLogger retrieves the logger dependency from the injector with
// consistent error handling.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}
