package worker

import (
	"context"

	"github.com/colegioeccos/requesthub/internal/events"
	"github.com/colegioeccos/requesthub/internal/service"
)

// StartNotificationWorker registers notification handlers and the admin
// roster cache invalidation hook.
func StartNotificationWorker(notifications *service.NotificationService, directory *service.CachedAdminDirectory, dispatcher events.Dispatcher) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if directory != nil && dispatcher != nil {
		dispatcher.Subscribe(events.EventRoleChanged, func(ctx context.Context, _ events.Event) error {
			directory.Invalidate(ctx)
			return nil
		})
	}
}
