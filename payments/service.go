package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"shoply/cart"
	"shoply/db"
	"shoply/events"
	"shoply/models"
	"shoply/orders"
	"shoply/rdx"
	"shoply/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	orderCurrency  = "INR"
	statusCacheKey = "orderstatus:%s"
	statusCacheTTL = 5 * time.Minute
)

// Service bridges orders and their carts to the payment gateway and
// reconciles gateway responses back onto order status. The webhook is the
// authoritative Paid/Failed source; initiation only moves an order to
// SUBMITTED once the gateway accepts it.
type Service struct {
	store         *db.Store
	orders        *orders.Service
	gateway       *Client
	cache         *redis.Client
	hub           *events.Hub
	webhookSecret []byte
}

func NewService(store *db.Store, orderSvc *orders.Service, gateway *Client, cache *redis.Client, hub *events.Hub, webhookSecret []byte) *Service {
	return &Service{
		store:         store,
		orders:        orderSvc,
		gateway:       gateway,
		cache:         cache,
		hub:           hub,
		webhookSecret: webhookSecret,
	}
}

type initiateRequest struct {
	UserID  string `json:"userId"`
	OrderID string `json:"orderId"`
}

// InitiatePayment loads the user and their cart, computes the payable total
// fresh from the line items, and posts the order to the gateway. The stored
// order moves to SUBMITTED only on a 2xx; any gateway failure leaves it
// untouched and is reported as a typed upstream/timeout error.
func (s *Service) InitiatePayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" || req.OrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "userId and orderId are required")
		return
	}

	var user models.User
	err := s.store.Users.FindOne(ctx, bson.M{"id": req.UserID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found for the given userId")
		return
	} else if err != nil {
		log.Printf("InitiatePayment user lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	var userCart models.Cart
	err = s.store.Carts.FindOne(ctx, bson.M{"userId": req.UserID}).Decode(&userCart)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found for the given userId")
		return
	} else if err != nil {
		log.Printf("InitiatePayment cart lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	// The payable amount is always recomputed from the cart, never read
	// from the stored order.
	totalAmount := cart.Total(userCart.Products)

	gatewayReq := models.CashfreeOrderRequest{
		CustomerDetails: models.CustomerDetails{
			CustomerID:    req.UserID,
			CustomerEmail: user.Email,
			CustomerPhone: user.Phone,
			CustomerName:  user.Name,
		},
		OrderID:       req.OrderID,
		OrderAmount:   totalAmount,
		OrderCurrency: orderCurrency,
	}

	body, err := s.gateway.CreateOrder(ctx, gatewayReq)
	if err != nil {
		log.Printf("InitiatePayment gateway error for order %s: %v", req.OrderID, err)
		switch {
		case errors.Is(err, ErrGatewayTimeout):
			utils.RespondWithError(w, http.StatusGatewayTimeout, "Payment gateway timed out")
		case errors.Is(err, ErrUpstream):
			utils.RespondWithError(w, http.StatusBadGateway, "Payment gateway error")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Payment initiation failed")
		}
		return
	}

	// Gateway accepted the order: provisional SUBMITTED, keyed by orderId.
	if _, err := s.orders.Transition(ctx, req.OrderID, orders.StatusSubmitted); err != nil {
		if err == orders.ErrNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found for the given orderId")
			return
		}
		// A repeat initiation on an already-settled order keeps its status.
		log.Printf("InitiatePayment transition skipped for order %s: %v", req.OrderID, err)
	} else {
		s.publishStatus(ctx, req.OrderID, string(orders.StatusSubmitted))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("InitiatePayment response write error: %v", err)
	}
}

// HandleWebhook applies the gateway's settlement verdict. The payload must
// be signed; a SUCCESS txStatus marks the order PAID, anything else FAILED.
func (s *Service) HandleWebhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read body")
		return
	}
	defer r.Body.Close()

	if !VerifySignature(s.webhookSecret, body, r.Header.Get(SignatureHeader)) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var payload models.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.OrderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	next := settlementStatus(payload.TxStatus)

	if _, err := s.orders.Transition(ctx, payload.OrderID, next); err != nil {
		switch err {
		case orders.ErrNotFound:
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		case orders.ErrInvalidTransition:
			// Late or duplicate delivery against a settled order; ack it.
			log.Printf("HandleWebhook ignored %s -> %s for order %s", payload.TxStatus, next, payload.OrderID)
		default:
			log.Printf("HandleWebhook transition error for order %s: %v", payload.OrderID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
			return
		}
	} else {
		s.publishStatus(ctx, payload.OrderID, string(next))
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Webhook received"})
}

// settlementStatus maps the gateway's txStatus verdict onto the order
// lifecycle: SUCCESS settles as PAID, anything else as FAILED.
func settlementStatus(txStatus string) orders.Status {
	if txStatus == "SUCCESS" {
		return orders.StatusPaid
	}
	return orders.StatusFailed
}

// GetPaymentStatus reads the order's status, through the Redis cache when
// it is warm.
func (s *Service) GetPaymentStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "orderId query parameter is required")
		return
	}

	key := fmt.Sprintf(statusCacheKey, orderID)
	if cached, err := rdx.Get(ctx, s.cache, key); err == nil && cached != "" {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": cached})
		return
	}

	order, err := s.orders.Get(ctx, orderID)
	if err == orders.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		log.Printf("GetPaymentStatus lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}

	if err := rdx.SetWithExpiry(ctx, s.cache, key, order.Status, statusCacheTTL); err != nil {
		log.Printf("GetPaymentStatus cache write error: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": order.Status})
}

// PaymentQR returns a PNG QR code encoding the order's signed status
// payload, suitable for offline verification at handover.
func (s *Service) PaymentQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	order, err := s.orders.Get(ctx, orderID)
	if err == orders.ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		log.Printf("PaymentQR lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}

	payload := fmt.Sprintf("%s|%s|%d", order.ID, order.Status, time.Now().Unix())
	signed := fmt.Sprintf("%s|%s", payload, Sign(s.webhookSecret, []byte(payload)))

	png, err := qrcode.Encode(signed, qrcode.Medium, 256)
	if err != nil {
		log.Printf("PaymentQR encode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Printf("PaymentQR write error: %v", err)
	}
}

// publishStatus updates the cache and notifies websocket subscribers after
// a successful transition. Both are best-effort.
func (s *Service) publishStatus(ctx context.Context, orderID, status string) {
	if s.cache != nil {
		key := fmt.Sprintf(statusCacheKey, orderID)
		if err := rdx.SetWithExpiry(ctx, s.cache, key, status, statusCacheTTL); err != nil {
			log.Printf("status cache write error for order %s: %v", orderID, err)
		}
	}
	if s.hub != nil {
		s.hub.Broadcast(orderID, status)
	}
}
