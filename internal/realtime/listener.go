package realtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// Channel raised by the posts_notify trigger (see migrations/schema.sql).
const notifyChannel = "posts_changes"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// ListenPostChanges subscribes to the posts change channel and forwards each
// notification payload to the hub. Reconnects are handled by pq.Listener; a
// reconnect delivers a nil notification, which is broadcast as an empty
// event so clients re-fetch whatever they may have missed.
func ListenPostChanges(ctx context.Context, dsn string, hub *Hub) error {
	listener := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				slog.Error("postgres listener event", "event", int(ev), "error", err.Error())
			}
		})

	if err := listener.Listen(notifyChannel); err != nil {
		listener.Close()
		return err
	}

	go func() {
		defer listener.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				if n == nil {
					hub.Broadcast([]byte(`{"action":"resync"}`))
					continue
				}
				hub.Broadcast([]byte(n.Extra))
			case <-time.After(pingInterval):
				go func() {
					if err := listener.Ping(); err != nil {
						slog.Error(err.Error())
					}
				}()
			}
		}
	}()

	return nil
}
