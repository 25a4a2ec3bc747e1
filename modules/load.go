package modules

import (
	"github.com/accordhr/accord-hrms/modules/hierarchy"
	"github.com/accordhr/accord-hrms/modules/notifications"
	"github.com/accordhr/accord-hrms/pkg/application"
)

// BuiltInModules lists modules in load order. Hierarchy must register before
// notifications, which subscribes to its events.
var BuiltInModules = []application.Module{
	hierarchy.NewModule(),
	notifications.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
