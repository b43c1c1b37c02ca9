package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"shoply/db"
	"shoply/models"
	"shoply/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service owns order creation, listing, and status reads. Status writes
// driven by the payment flow live in the payments package; both go through
// the transition table above.
type Service struct {
	store *db.Store
}

func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

type createOrderRequest struct {
	UserID           string  `json:"userId"`
	CartID           string  `json:"cartId"`
	Status           string  `json:"status"`
	TotalAmount      float64 `json:"totalAmount"`
	PaymentReference string  `json:"paymentReference"`
}

// CreateOrder inserts a new order. The caller-supplied status is parsed
// against the closed set; anything unrecognized lands as CREATED.
func (s *Service) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" || req.CartID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "userId and cartId are required")
		return
	}
	if req.TotalAmount < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "totalAmount must not be negative")
		return
	}

	now := time.Now()
	order := models.Order{
		ID:               utils.NewID(),
		UserID:           req.UserID,
		CartID:           req.CartID,
		Status:           string(ParseStatus(req.Status)),
		TotalAmount:      req.TotalAmount,
		PaymentReference: req.PaymentReference,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := s.store.Orders.InsertOne(ctx, order); err != nil {
		log.Printf("CreateOrder insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order creation failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// ListOrders returns every order document.
func (s *Service) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := s.store.Orders.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("ListOrders find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Printf("ListOrders cursor error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// Get loads one order by its business id.
func (s *Service) Get(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := s.store.Orders.FindOne(ctx, bson.M{"id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return order, ErrNotFound
	}
	return order, err
}

// Transition moves the order to next if the table allows it, persisting the
// new status. ErrInvalidTransition is returned for disallowed moves.
func (s *Service) Transition(ctx context.Context, orderID string, next Status) (models.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return order, err
	}

	current := ParseStatus(order.Status)
	if !CanTransition(current, next) {
		return order, ErrInvalidTransition
	}

	_, err = s.store.Orders.UpdateOne(ctx,
		bson.M{"id": orderID},
		bson.M{"$set": bson.M{"status": string(next), "updated_at": time.Now()}},
	)
	if err != nil {
		return order, err
	}
	order.Status = string(next)
	return order, nil
}
