package handlers

import (
	"bufio"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"suraah/internal/metrics"
	"suraah/internal/repos"
)

// streamCollection serves a collection subscription as a server-sent-event
// stream: one `data:` frame per snapshot, starting with the current state.
// The subscription is torn down when the client goes away.
func streamCollection[T any](c *fiber.Ctx, m *metrics.StoreMetrics, subscribe func(func([]T)) *repos.Subscription) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		// cap 1 + drain keeps only the newest snapshot when the client is slow
		snapshots := make(chan []T, 1)
		sub := subscribe(func(snap []T) {
			select {
			case snapshots <- snap:
			default:
				select {
				case <-snapshots:
				default:
				}
				select {
				case snapshots <- snap:
				default:
				}
			}
		})
		defer sub.Cancel()

		m.SubscriptionOpened()
		defer m.SubscriptionClosed()

		heartbeat := time.NewTicker(15 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case snap := <-snapshots:
				b, err := json.Marshal(snap)
				if err != nil {
					return
				}
				if _, err := w.WriteString("data: " + string(b) + "\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-heartbeat.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}
