package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"party-package-store/internal/middleware"
)

// Router bundles every handler the HTTP surface needs
type Router struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Reviews  *ReviewHandler
	Wishlist *WishlistHandler
	Contact  *ContactHandler
	Admin    *AdminHandler
}

// Routes assembles the full route tree: public catalog and auth endpoints,
// session-guarded customer endpoints, and the admin subtree behind the
// admin guard.
func (rt *Router) Routes(auth *middleware.AuthMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(auth.LoadUser)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/events", rt.Catalog.ListPackages)
		r.Get("/events/{id}", rt.Catalog.GetPackage)
		r.Get("/events/{id}/reviews", rt.Catalog.ListReviews)
		r.Get("/categories", rt.Catalog.ListCategories)
		r.Post("/send-email", rt.Contact.SendEmail)

		r.Post("/auth/register", rt.Auth.Register)
		r.Post("/auth/login", rt.Auth.Login)
		r.Post("/auth/logout", rt.Auth.Logout)

		// Signed-in customers
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Get("/auth/me", rt.Auth.Me)

			r.Get("/cart", rt.Cart.GetCart)
			r.Post("/cart/items", rt.Cart.AddItem)
			r.Put("/cart/items/{id}", rt.Cart.UpdateItem)
			r.Delete("/cart/items/{id}", rt.Cart.RemoveItem)

			r.Post("/orders/create", rt.Orders.CreateOrder)
			r.Post("/payments/verify", rt.Orders.VerifyPayment)
			r.Get("/orders", rt.Orders.ListOrders)
			r.Get("/orders/{id}", rt.Orders.GetOrder)
			r.Post("/emails/send-order", rt.Orders.SendOrderEmail)

			r.Post("/events/{id}/reviews", rt.Reviews.CreateReview)

			r.Post("/wishlist", rt.Wishlist.Add)
			r.Delete("/wishlist/{eventId}", rt.Wishlist.Remove)
			r.Get("/wishlist", rt.Wishlist.List)
		})

		// Admin back office
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Post("/categories", rt.Admin.CreateCategory)
			r.Put("/categories/{id}", rt.Admin.UpdateCategory)
			r.Delete("/categories/{id}", rt.Admin.DeleteCategory)

			r.Post("/events", rt.Admin.CreatePackage)
			r.Put("/events/{id}", rt.Admin.UpdatePackage)

			r.Get("/orders", rt.Admin.ListOrders)
			r.Put("/orders", rt.Admin.UpdateDeliveryStatus)

			r.Get("/users", rt.Admin.ListUsers)
			r.Put("/users", rt.Admin.UpdateUser)

			r.Post("/upload", rt.Admin.Upload)
		})
	})

	return r
}
