package modules

import (
	module "github.com/louisbranch/injuryrisk/internal/services/web/module"
	"github.com/louisbranch/injuryrisk/internal/services/web/modules/predict"
	"github.com/louisbranch/injuryrisk/internal/services/web/modules/public"
	"github.com/louisbranch/injuryrisk/internal/services/web/modules/submissions"
)

// DefaultModules returns the web modules for deps. The submissions API is
// mounted only when an outcome log is configured.
func DefaultModules(deps Dependencies) []Module {
	var reporters []module.HealthReporter
	var optional []Module
	if deps.Submissions != nil {
		outcomes := submissions.New(deps.Submissions)
		reporters = append(reporters, outcomes)
		optional = append(optional, outcomes)
	}
	return append([]Module{
		public.New(reporters...),
		predict.New(deps),
	}, optional...)
}
