package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"stagefront/internal/handlers"
	"stagefront/internal/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth      *handlers.AuthHandler
	Public    *handlers.PublicHandler
	Cart      *handlers.CartHandler
	Checkout  *handlers.CheckoutHandler
	Payment   *handlers.PaymentHandler
	Orders    *handlers.OrderHandler
	Profile   *handlers.ProfileHandler
	Organizer *handlers.OrganizerHandler
	Drafts    *handlers.DraftHandler
	Contact   *handlers.ContactHandler
}

// NewRouter assembles the API routes
func NewRouter(h Handlers, auth *middleware.AuthMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(auth.LoadUser)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.With(auth.RequireAuth).Get("/me", h.Auth.Me)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Public.ListEvents)
			r.Get("/categories", h.Public.ListCategories)
			r.Get("/{id}", h.Public.GetEvent)
		})

		r.Post("/contact", h.Contact.Submit)
		r.Post("/checkout/quote", h.Checkout.Quote)

		r.Route("/cart", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Cart.AddItem)
			r.Patch("/items", h.Cart.UpdateItem)
			r.Delete("/", h.Cart.ClearCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/", h.Checkout.StartCheckout)
			r.Post("/reserve", h.Checkout.Reserve)
			r.Post("/release", h.Checkout.ReleaseReservation)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/", h.Orders.ListOrders)
			r.Get("/{id}", h.Orders.GetOrder)
			r.Post("/{id}/cancel", h.Orders.CancelOrder)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/", h.Profile.GetProfile)
			r.Put("/", h.Profile.UpdateProfile)
			r.Post("/password", h.Profile.ChangePassword)
		})

		r.Route("/drafts/{key}", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Put("/", h.Drafts.SaveDraft)
			r.Get("/", h.Drafts.GetDraft)
			r.Delete("/", h.Drafts.DeleteDraft)
		})

		r.Route("/organizer", func(r chi.Router) {
			r.Use(auth.RequireOrganizer)
			r.Get("/events", h.Organizer.ListMyEvents)
			r.Post("/events", h.Organizer.CreateEvent)
			r.Put("/events/{id}", h.Organizer.UpdateEvent)
			r.Delete("/events/{id}", h.Organizer.DeleteEvent)
			r.Post("/events/{id}/tiers", h.Organizer.CreateTier)
			r.Put("/tiers/{tierID}", h.Organizer.UpdateTier)
			r.Delete("/tiers/{tierID}", h.Organizer.DeleteTier)
			r.Post("/events/{id}/products", h.Organizer.CreateProduct)
			r.Put("/products/{productID}", h.Organizer.UpdateProduct)
			r.Delete("/products/{productID}", h.Organizer.DeleteProduct)
			r.Post("/images", h.Organizer.UploadImage)
		})
	})

	// Gateway-facing endpoints live outside /api; the gateway is
	// configured with these exact paths.
	r.Route("/payment", func(r chi.Router) {
		r.Get("/callback", h.Payment.Callback)
		r.Post("/webhook", h.Payment.Webhook)
	})

	return r
}
