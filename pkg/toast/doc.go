// Package toast provides feedback notifications for the application shell.
//
// Toasts are not rendered by this package. Each helper publishes a single
// event on the shell's event bus; the presentation layer subscribes and
// renders with whatever widget it likes. This keeps the shell free of any
// UI dependency and lets tests assert on the published payload directly.
//
// # Consuming toasts
//
//	bus.Subscribe(toast.EventName, func(e events.Event) {
//	    level := e.Detail["level"].(string)
//	    message := e.Detail["message"].(string)
//	    // render, then dismiss after e.Detail["duration"] milliseconds
//	})
//
// # Emitting toasts
//
//	func deleteFile(bus *events.Bus, id string) error {
//	    if err := files.Delete(id); err != nil {
//	        toast.Error(bus, "Failed to delete file")
//	        return err
//	    }
//	    toast.Success(bus, "File deleted")
//	    return nil
//	}
//
// With a title:
//
//	toast.WithTitle(bus, toast.TypeSuccess, "Profile", "Your changes have been saved.")
package toast
