package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simspec/internal/ctxlog"
	"github.com/specialistvlad/simspec/internal/dispatch"
	"github.com/specialistvlad/simspec/internal/filter"
	"github.com/specialistvlad/simspec/internal/fsutil"
	"github.com/specialistvlad/simspec/internal/model"
	"github.com/specialistvlad/simspec/internal/parser"
	"github.com/specialistvlad/simspec/internal/report"
)

// Run executes the harness end to end: discover suite files, parse them,
// filter and dispatch the cases, and write the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.appConfig.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer a.closeHealthCheckServer()
	}

	suites, err := a.loadSuites(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, s := range suites {
		total += len(s.Cases)
	}
	a.logger.Info("Suites parsed.", "suites", len(suites), "cases", total)

	if a.appConfig.Validate {
		fmt.Fprintf(a.outW, "ok: %d suite(s), %d case(s)\n", len(suites), total)
		return nil
	}

	if total == 0 {
		a.logger.Warn("No test cases found, nothing to execute.")
		return nil
	}

	factory, err := a.registry.Build(ctx, a.model.Runtime)
	if err != nil {
		return fmt.Errorf("failed to build runtime factory: %w", err)
	}

	env := filter.Env{
		Is3D:              a.model.Environment.Is3D,
		UsesCodeGenerator: a.model.Environment.UsesCodeGenerator,
	}
	a.logger.Info("Starting execution.", "workers", a.model.Workers, "is3D", env.Is3D, "codeGenerator", env.UsesCodeGenerator)

	d := dispatch.New(factory, env, a.model.Workers)
	results := d.RunSuites(ctx, suites)

	summary := report.Write(a.outW, results)
	a.logger.Info("Execution finished.", "passed", summary.Passed, "failed", summary.Failed, "skipped", summary.Skipped)

	if summary.HasFailures() {
		return fmt.Errorf("%d test failure(s)", summary.Failed)
	}
	return nil
}

// loadSuites discovers and parses every configured suite group. A parse
// error in any file aborts the run; nothing is silently dropped.
func (a *App) loadSuites(ctx context.Context) ([]*model.Suite, error) {
	logger := ctxlog.FromContext(ctx)

	var suites []*model.Suite
	for _, group := range a.model.Suites {
		logger.Debug("Loading suite group.", "group", group.Name, "path", group.Path, "recursive", group.Recursive)
		files, err := fsutil.LoadGroup(group.Path, group.Recursive, group.Filename)
		if err != nil {
			return nil, fmt.Errorf("suite group %q: %w", group.Name, err)
		}
		if len(files) == 0 {
			logger.Warn("Suite group matched no files.", "group", group.Name, "path", group.Path)
		}
		for _, file := range files {
			suite, err := parser.ParseSuite(file.Name, file.Content)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file.Path, err)
			}
			suites = append(suites, suite)
		}
	}
	return suites, nil
}
