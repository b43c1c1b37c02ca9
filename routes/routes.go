package routes

import (
	"shoply/cart"
	"shoply/events"
	"shoply/middleware"
	"shoply/orders"
	"shoply/payments"
	"shoply/products"
	"shoply/ratelim"
	"shoply/users"

	"github.com/julienschmidt/httprouter"
)

func AddUserRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *users.Service) {
	router.POST("/user", rl.Limit(svc.Register))
	router.POST("/login", rl.Limit(svc.Login))
	router.GET("/users", svc.ListUsers)
	router.DELETE("/users", svc.DeleteAllUsers)
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *products.Service) {
	router.POST("/product", rl.Limit(svc.CreateProduct))
	router.GET("/products", svc.ListProducts)
	router.GET("/product/:productId", svc.GetProduct)
	router.POST("/product/:productId/image",
		middleware.Chain(rl.Limit, middleware.Authenticate)(svc.UploadImage))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, mgr *cart.Manager) {
	router.POST("/cart", rl.Limit(mgr.AddItem))
	router.GET("/carts", mgr.ListCarts)
	router.GET("/cart/:userId", mgr.GetCart)
	router.DELETE("/cart/:userId/:productId", rl.Limit(mgr.RemoveItem))
	router.DELETE("/carts", mgr.ClearAll)
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *orders.Service) {
	router.POST("/order", rl.Limit(svc.CreateOrder))
	router.GET("/orders", svc.ListOrders)
	router.GET("/order/:orderId/invoice", svc.PrintInvoice)
}

func AddPaymentRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, svc *payments.Service, hub *events.Hub) {
	router.POST("/initiate-payment", rl.Limit(svc.InitiatePayment))
	router.POST("/payment-webhook", svc.HandleWebhook)
	router.GET("/payment-status", svc.GetPaymentStatus)
	router.GET("/payment-qr/:orderId", svc.PaymentQR)
	router.GET("/ws/orders/:orderId", events.WebSocketHandler(hub))
}
