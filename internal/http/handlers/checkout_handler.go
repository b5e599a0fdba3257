package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "suraah/internal/log"
	"suraah/internal/services"
	"suraah/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
	Intents  *services.IntentService
	Orders   *services.OrderService
}

// Summary returns what the checkout page shows: the pending item and the
// price quote. 409 when the session has nothing to check out.
func (h *CheckoutHandler) Summary(c *fiber.Ctx) error {
	it, err := h.Intents.Get(ensureSID(c))
	if err != nil {
		return fail(c, "checkout.summary", err)
	}
	if it == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no pending order item"})
	}
	return c.JSON(intentResponse(it))
}

// Submit validates the form and turns the pending item into an order. On
// failure the intent is untouched so the customer can retry.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var form services.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "invalid checkout payload")
	}

	res, err := h.Checkout.Submit(ensureSID(c), form)
	if err != nil {
		return fail(c, "checkout.submit", err)
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id": res.OrderID,
		"total":    res.Quote.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Confirmation serves the post-checkout order lookup by id.
func (h *CheckoutHandler) Confirmation(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, "checkout.confirmation", err)
	}
	return c.JSON(o)
}
