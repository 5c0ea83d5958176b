package app

import "github.com/dshills/tabby/internal/plugin"

// drainMessages applies every queued plugin message in arrival order.
func (app *Application) drainMessages() {
	for _, msg := range app.plugins.Mailbox().Drain() {
		app.applyMessage(msg)
	}
}

func (app *Application) applyMessage(msg plugin.Message) {
	ctx := app.ctx
	log := app.logger.WithComponent("app").WithField("plugin", msg.PluginID)

	switch msg.Kind {
	case plugin.StatusMessage:
		ctx.Status = msg.Text

	case plugin.RegisterCommand:
		prev, replaced := ctx.Registry.RegisterScripted(msg.Command, msg.Ref)
		if replaced {
			log.Warn("command %s replaced (was %s)", msg.Command, prev.Kind)
		} else {
			log.Debug("command %s registered", msg.Command)
		}

	case plugin.PluginError:
		// The host already logged the fault.
		ctx.Status = msg.Text

	case plugin.PluginChanged:
		log.Info("%s changed on disk", msg.Path)
		ctx.Status = msg.Text
	}
}
