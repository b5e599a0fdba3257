package handlers

import (
	"github.com/gofiber/fiber/v2"

	"suraah/internal/domain"
	"suraah/internal/images"
	"suraah/internal/metrics"
	"suraah/internal/services"
	"suraah/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Metrics *metrics.StoreMetrics
}

// productView is a product with its image references resolved to servable
// paths; the stored document may hold bare filenames.
type productView struct {
	domain.Product
	ImageURLs []string `json:"imageUrls"`
}

func toProductView(p domain.Product) productView {
	urls := make([]string, 0, len(p.Images))
	for _, ref := range p.Images {
		urls = append(urls, images.Resolve(ref))
	}
	if len(urls) == 0 {
		urls = []string{images.Placeholder}
	}
	return productView{Product: p, ImageURLs: urls}
}

func toProductViews(ps []domain.Product) []productView {
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductView(p))
	}
	return out
}

// Products handles the storefront product listing with optional
// ?category=, ?q= and ?featured= filters.
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	var (
		prods []domain.Product
		err   error
	)
	switch {
	case c.Query("q") != "":
		prods, err = h.Catalog.SearchProducts(c.Query("q"))
	case c.Query("category") != "":
		prods, err = h.Catalog.ProductsByCategory(c.Query("category"))
	case c.QueryBool("featured"):
		prods, err = h.Catalog.FeaturedProducts(c.QueryInt("limit", 8))
	default:
		prods, err = h.Catalog.ListProducts()
	}
	if err != nil {
		return fail(c, "catalog.products", err)
	}
	return c.JSON(fiber.Map{"products": toProductViews(prods)})
}

func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, "catalog.product", err)
	}
	return c.JSON(toProductView(p))
}

// Categories returns the navigation list; ?all=1 includes inactive ones
// (admin screens want those too).
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	var (
		cats []domain.Category
		err  error
	)
	if c.QueryBool("all") {
		cats, err = h.Catalog.ListCategories()
	} else {
		cats, err = h.Catalog.ActiveCategories()
	}
	if err != nil {
		return fail(c, "catalog.categories", err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

func (h *CatalogHandler) WatchProducts(c *fiber.Ctx) error {
	return streamCollection(c, h.Metrics, h.Catalog.WatchProducts)
}

func (h *CatalogHandler) WatchCategories(c *fiber.Ctx) error {
	return streamCollection(c, h.Metrics, h.Catalog.WatchCategories)
}
