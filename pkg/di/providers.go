package di

import (
	"github.com/appupgen/appupgen/pkg/svc/artifact"
	"github.com/appupgen/appupgen/pkg/svc/plan"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Dependency providers.

// ToolName is the name stamped into generated descriptor headers.
const ToolName = "appupgen"

// NewRuntime constructs the shared runtime container used by the root
// command and tests. It registers default implementations for the artifact
// inspector, the plan emitter, and the logger.
func NewRuntime() *Runtime {
	return New(
		provideInspector,
		provideEmitter,
		provideLogger,
	)
}

// provideInspector registers the module image inspector dependency.
func provideInspector(i Injector) error {
	do.Provide(i, func(Injector) (artifact.Inspector, error) {
		return artifact.NewModuleImageInspector(), nil
	})

	return nil
}

// provideEmitter registers the plan emitter dependency.
func provideEmitter(i Injector) error {
	do.Provide(i, func(Injector) (*plan.Emitter, error) {
		return plan.NewEmitter(ToolName), nil
	})

	return nil
}

// provideLogger registers the logger dependency. The logger starts at info
// level; commands raise it to debug when verbose output is requested.
func provideLogger(i Injector) error {
	do.Provide(i, func(Injector) (*logrus.Logger, error) {
		logger := logrus.New()
		logger.SetLevel(logrus.InfoLevel)

		return logger, nil
	})

	return nil
}
