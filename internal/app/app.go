package app

import (
	"github.com/sirupsen/logrus"

	"github.com/kmax12/gridstatusio/internal/config"
	"github.com/kmax12/gridstatusio/internal/domain"
	"github.com/kmax12/gridstatusio/internal/store"
	"github.com/kmax12/gridstatusio/internal/workflow"
)

// App bundles the configuration, services, registry and engine for the CLI.
type App struct {
	Workdir  string
	Config   *config.Config
	Log      *logrus.Logger
	Registry *workflow.Registry
	Engine   *workflow.Engine
	Reports  *store.ReportStore

	Cleaner  domain.Cleaner
	Deps     domain.DepsInstaller
	Linter   domain.Linter
	Tester   domain.Tester
	Packager domain.Packager
	Docs     domain.DocsBuilder
}
