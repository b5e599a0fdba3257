package handlers

import (
	"suraah/internal/config"
	"suraah/internal/metrics"
	"suraah/internal/repos"
	"suraah/internal/services"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	IntentHandler   *IntentHandler
	CheckoutHandler *CheckoutHandler
	AuthHandler     *AuthHandler
	AdminHandler    *AdminHandler
	Auth            *services.AuthService
}

func NewDeps(store *repos.Store, cfg config.Config, m *metrics.StoreMetrics) *Deps {
	intentRepo := repos.NewIntentRepo(store.DB)

	catalogSvc := services.NewCatalogService(store.Products, store.Categories)
	intentSvc := services.NewIntentService(intentRepo, m)
	orderSvc := services.NewOrderService(store.Orders, m)
	checkoutSvc := services.NewCheckoutService(intentSvc, orderSvc, m)
	productSvc := services.NewProductService(store.Products)
	categorySvc := services.NewCategoryService(store.Categories)
	dashboardSvc := services.NewDashboardService(store.Products, store.Categories, orderSvc)
	authSvc := services.NewAuthService(cfg.AdminUser, cfg.AdminPasswordHash, cfg.TokenSecret, cfg.TokenTTL)

	return &Deps{
		Auth:            authSvc,
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc, Metrics: m},
		IntentHandler:   &IntentHandler{Intents: intentSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc, Intents: intentSvc, Orders: orderSvc},
		AuthHandler:     &AuthHandler{Auth: authSvc},
		AdminHandler: &AdminHandler{
			Products:   productSvc,
			Categories: categorySvc,
			Orders:     orderSvc,
			Dashboard:  dashboardSvc,
			Metrics:    m,
		},
	}
}
