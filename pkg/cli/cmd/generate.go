package cmd

import (
	"github.com/appupgen/appupgen/pkg/config"
	runtime "github.com/appupgen/appupgen/pkg/di"
	"github.com/appupgen/appupgen/pkg/svc/generator"
	"github.com/appupgen/appupgen/pkg/ui/notify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const generateLongDesc = `Generate upgrade plan descriptors for a release.

Compares the previous release tree against the current one, and for every
component whose version changed, synthesizes the minimal instruction list to
move a running instance to the new code. Each plan is written as a
<component>.appup descriptor into the new release's artifact directory and
the active build output directory (or into --target-dir when given).

Components that already carry an appup descriptor are skipped untouched.

Examples:
  # Compare the previous release at ./releases/old against rel/myrel
  appupgen generate --release-name myrel --previous ./releases/old

  # Pin the previous version and write descriptors to one directory
  appupgen generate --release-name myrel --previous ./releases/old \
    --previous-version 1.0 --target-dir ./appups`

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(runtimeContainer *runtime.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate upgrade plan descriptors",
		Long:         generateLongDesc,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runtimeContainer.Invoke(func(injector runtime.Injector) error {
				return handleGenerateRunE(cmd, injector)
			})
		},
	}

	addGenerateFlags(cmd)

	return cmd
}

// addGenerateFlags declares the generate flags; values flow through Viper so
// config file and APPUPGEN_* environment variables can supply them too.
func addGenerateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String(config.KeyReleaseName, "", "name of the release to compare")
	flags.String(config.KeyPreviousRoot, "", "path to the previous release root")
	flags.String(config.KeyPreviousVersion, "", "explicit previous release version (default: discovered)")
	flags.String(config.KeyCurrentRoot, "", "path to the current release root (default: <base-dir>/rel/<release-name>)")
	flags.String(config.KeyBaseDir, "", "project base directory (default: .)")
	flags.String(config.KeyBuildDir, "", "active build output directory (default: <base-dir>/_build/default/lib)")
	flags.String(config.KeyTargetDir, "", "write all descriptors into this directory instead of the default locations")
	flags.Bool(config.KeyParallel, false, "synthesize per-component plans concurrently")
	flags.Bool(config.KeyVerbose, false, "enable debug logging")
}

// handleGenerateRunE loads the configuration, resolves collaborators, and
// runs the generator, reporting results on the command's output streams.
func handleGenerateRunE(cmd *cobra.Command, injector runtime.Injector) error {
	manager, err := config.NewManager(cmd.Flags())
	if err != nil {
		return err
	}

	cfg, err := manager.Load()
	if err != nil {
		return err
	}

	inspector, err := runtime.ResolveInspector(injector)
	if err != nil {
		return err
	}

	emitter, err := runtime.ResolveEmitter(injector)
	if err != nil {
		return err
	}

	logger, err := runtime.ResolveLogger(injector)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	out := cmd.OutOrStdout()

	notify.Activityf(out, "comparing release %q: %s -> %s", cfg.ReleaseName, cfg.PreviousRoot, cfg.CurrentRoot)

	summary, err := generator.New(cfg, inspector, emitter, logger).Run()

	reportSummary(cmd, summary)

	return err
}

// reportSummary prints what the run produced. Failures land on stderr; the
// run's error return carries the details for the exit code.
func reportSummary(cmd *cobra.Command, summary generator.Summary) {
	out := cmd.OutOrStdout()

	for _, component := range summary.Diff.Removed {
		notify.Infof(out, "component %s was removed; no teardown instructions are generated", component)
	}

	for _, component := range summary.Skipped {
		notify.Warningf(out, "component %s already has a plan descriptor, skipping", component)
	}

	for _, target := range summary.Written {
		notify.Generatef(out, "wrote %s", target)
	}

	for _, component := range summary.Failed {
		notify.Errorf(cmd.ErrOrStderr(), "component %s failed, see run error for details", component)
	}

	if len(summary.Failed) == 0 {
		notify.Successf(out, "wrote %d plan descriptor(s)", len(summary.Written))
	}
}
