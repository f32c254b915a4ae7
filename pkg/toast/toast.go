package toast

import "github.com/google/uuid"

// EventName is the event name published for toasts.
// Presentation code should listen for this event.
const EventName = "appshell:toast"

// DefaultDuration is the auto-dismiss time, in milliseconds, attached to
// every toast that does not override it.
const DefaultDuration = 3000

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Emitter publishes named events with a detail payload. *events.Bus
// satisfies it.
type Emitter interface {
	Publish(name string, detail map[string]any)
}

// Show displays a toast notification.
//
// The subscriber receives an event with:
//   - name = "appshell:toast"
//   - detail = { id, level: "success|error|warning|info", message, duration }
//
// The id is unique per toast so a renderer can dismiss or replace it.
func Show(e Emitter, level Type, message string) {
	e.Publish(EventName, map[string]any{
		"id":       uuid.NewString(),
		"level":    string(level),
		"message":  message,
		"duration": DefaultDuration,
	})
}

// Success shows a success toast.
//
//	toast.Success(bus, "Changes saved!")
func Success(e Emitter, message string) {
	Show(e, TypeSuccess, message)
}

// Error shows an error toast.
//
//	toast.Error(bus, "Failed to delete file")
func Error(e Emitter, message string) {
	Show(e, TypeError, message)
}

// Warning shows a warning toast.
//
//	toast.Warning(bus, "This action cannot be undone")
func Warning(e Emitter, message string) {
	Show(e, TypeWarning, message)
}

// Info shows an info toast.
//
//	toast.Info(bus, "New features available")
func Info(e Emitter, message string) {
	Show(e, TypeInfo, message)
}

// WithTitle shows a toast with a title and message.
//
//	toast.WithTitle(bus, toast.TypeSuccess, "Settings", "Your changes have been saved.")
func WithTitle(e Emitter, level Type, title, message string) {
	e.Publish(EventName, map[string]any{
		"id":       uuid.NewString(),
		"level":    string(level),
		"title":    title,
		"message":  message,
		"duration": DefaultDuration,
	})
}

// WithDuration shows a toast that overrides the default auto-dismiss time.
// A duration of 0 means the toast stays until dismissed.
func WithDuration(e Emitter, level Type, message string, durationMillis int) {
	e.Publish(EventName, map[string]any{
		"id":       uuid.NewString(),
		"level":    string(level),
		"message":  message,
		"duration": durationMillis,
	})
}

// WithAction shows a toast with an action button.
//
//	toast.WithAction(bus, toast.TypeInfo, "File deleted", "Undo", "undo-42")
func WithAction(e Emitter, level Type, message, actionLabel, actionID string) {
	e.Publish(EventName, map[string]any{
		"id":          uuid.NewString(),
		"level":       string(level),
		"message":     message,
		"actionLabel": actionLabel,
		"actionID":    actionID,
		"duration":    DefaultDuration,
	})
}

// Custom shows a toast with caller-supplied data. An "id" is added when the
// caller did not set one. Use this for advanced toast configurations.
func Custom(e Emitter, data map[string]any) {
	if _, ok := data["id"]; !ok {
		data["id"] = uuid.NewString()
	}
	e.Publish(EventName, data)
}
