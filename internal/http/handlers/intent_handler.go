package handlers

import (
	"github.com/gofiber/fiber/v2"

	"suraah/internal/domain"
	applog "suraah/internal/log"
	"suraah/internal/services"
)

type IntentHandler struct {
	Intents *services.IntentService
}

type intentView struct {
	Item       *domain.OrderIntent  `json:"item"`
	TotalPrice float64              `json:"totalPrice"`
	TotalItems int                  `json:"totalItems"`
	Quote      *services.PriceQuote `json:"quote,omitempty"`
}

func intentResponse(it *domain.OrderIntent) intentView {
	v := intentView{Item: it}
	if it != nil {
		v.TotalPrice = it.TotalPrice()
		v.TotalItems = it.Quantity
		q := services.Quote(it.TotalPrice())
		v.Quote = &q
	}
	return v
}

// Get returns the session's pending item (null when none).
func (h *IntentHandler) Get(c *fiber.Ctx) error {
	it, err := h.Intents.Get(ensureSID(c))
	if err != nil {
		return fail(c, "intent.get", err)
	}
	return c.JSON(intentResponse(it))
}

// Set replaces the pending item ("buy now").
func (h *IntentHandler) Set(c *fiber.Ctx) error {
	var it domain.OrderIntent
	if err := c.BodyParser(&it); err != nil {
		return badRequest(c, "invalid order item")
	}
	if it.ID == "" || it.Name == "" || it.Price < 0 {
		return badRequest(c, "order item needs id, name and a non-negative price")
	}
	sid := ensureSID(c)
	if err := h.Intents.Set(sid, it); err != nil {
		return fail(c, "intent.set", err)
	}
	applog.Info(c, "intent.set", map[string]any{"product_id": it.ID})
	stored, err := h.Intents.Get(sid)
	if err != nil {
		return fail(c, "intent.set", err)
	}
	return c.JSON(intentResponse(stored))
}

// UpdateQuantity adjusts the pending quantity; zero or below clears the
// intent.
func (h *IntentHandler) UpdateQuantity(c *fiber.Ctx) error {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid quantity payload")
	}
	it, err := h.Intents.UpdateQuantity(ensureSID(c), body.Quantity)
	if err != nil {
		return fail(c, "intent.quantity", err)
	}
	return c.JSON(intentResponse(it))
}

func (h *IntentHandler) Clear(c *fiber.Ctx) error {
	if err := h.Intents.Clear(ensureSID(c)); err != nil {
		return fail(c, "intent.clear", err)
	}
	return c.JSON(intentResponse(nil))
}
