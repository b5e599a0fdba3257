package handlers

import (
	"github.com/gofiber/fiber/v2"

	"suraah/internal/domain"
	applog "suraah/internal/log"
	"suraah/internal/metrics"
	"suraah/internal/services"
	"suraah/internal/validate"
)

type AdminHandler struct {
	Products   *services.ProductService
	Categories *services.CategoryService
	Orders     *services.OrderService
	Dashboard  *services.DashboardService
	Metrics    *metrics.StoreMetrics
}

func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.Dashboard.Stats()
	if err != nil {
		return fail(c, "admin.dashboard", err)
	}
	return c.JSON(stats)
}

// ---------- products ----------

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return badRequest(c, "invalid product payload")
	}
	id, err := h.Products.Create(p)
	if err != nil {
		return fail(c, "admin.product.create", err)
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	patch := map[string]any{}
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid product patch")
	}
	if err := h.Products.Update(id, patch); err != nil {
		return fail(c, "admin.product.update", err)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Products.Delete(id); err != nil {
		return fail(c, "admin.product.delete", err)
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// UpdateStock is the dedicated stock path; it keeps inStock derived from the
// quantity, unlike the generic patch.
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid stock payload")
	}
	if err := h.Products.UpdateStock(id, body.Quantity); err != nil {
		return fail(c, "admin.product.stock", err)
	}
	applog.Audit(c, "admin.product.stock", map[string]any{"product_id": id, "quantity": body.Quantity})
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- categories ----------

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var cat domain.Category
	if err := c.BodyParser(&cat); err != nil {
		return badRequest(c, "invalid category payload")
	}
	id, err := h.Categories.Create(cat)
	if err != nil {
		return fail(c, "admin.category.create", err)
	}
	applog.Audit(c, "admin.category.create", map[string]any{"category_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid category id")
	}
	patch := map[string]any{}
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid category patch")
	}
	if err := h.Categories.Update(id, patch); err != nil {
		return fail(c, "admin.category.update", err)
	}
	applog.Audit(c, "admin.category.update", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid category id")
	}
	if err := h.Categories.Delete(id); err != nil {
		return fail(c, "admin.category.delete", err)
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- orders ----------

// ListOrders supports ?status=, ?email= and ?limit= filters, newest first.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	var (
		orders []domain.Order
		err    error
	)
	switch {
	case c.Query("status") != "":
		st, perr := domain.ParseOrderStatus(c.Query("status"))
		if perr != nil {
			return badRequest(c, perr.Error())
		}
		orders, err = h.Orders.ByStatus(st)
	case c.Query("email") != "":
		orders, err = h.Orders.ByCustomerEmail(c.Query("email"))
	case c.QueryInt("limit") > 0:
		orders, err = h.Orders.Recent(c.QueryInt("limit"))
	default:
		orders, err = h.Orders.List()
	}
	if err != nil {
		return fail(c, "admin.orders.list", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *AdminHandler) GetOrder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, "admin.order.get", err)
	}
	return c.JSON(o)
}

func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var body struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"trackingNumber"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid status payload")
	}
	st, err := domain.ParseOrderStatus(body.Status)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Orders.UpdateStatus(id, st, body.TrackingNumber); err != nil {
		return fail(c, "admin.order.status", err)
	}
	applog.Audit(c, "admin.order.status", map[string]any{"order_id": id, "status": st})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AdminHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var body struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payment payload")
	}
	ps, err := domain.ParsePaymentStatus(body.PaymentStatus)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.Orders.UpdatePayment(id, ps); err != nil {
		return fail(c, "admin.order.payment", err)
	}
	applog.Audit(c, "admin.order.payment", map[string]any{"order_id": id, "payment_status": ps})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AdminHandler) DeleteOrder(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	if err := h.Orders.Delete(id); err != nil {
		return fail(c, "admin.order.delete", err)
	}
	applog.Audit(c, "admin.order.delete", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AdminHandler) WatchOrders(c *fiber.Ctx) error {
	return streamCollection(c, h.Metrics, h.Orders.Watch)
}
