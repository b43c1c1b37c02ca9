package cart

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Manager owns the one-cart-per-user documents and the product join on reads.
type Manager struct {
	store *db.Store
}

func NewManager(store *db.Store) *Manager {
	return &Manager{store: store}
}

type addItemRequest struct {
	UserID    string  `json:"userId"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
}

// AddItem merges a line item into the user's cart, creating the cart lazily
// on first add. The whole cart document is persisted back (last write wins).
func (m *Manager) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.UserID == "" || req.ProductID == "" || req.Quantity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	var cart models.Cart
	err := m.store.Carts.FindOne(ctx, bson.M{"userId": req.UserID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		cart = models.Cart{ID: utils.NewID(), UserID: req.UserID, Products: []models.CartLineItem{}}
	} else if err != nil {
		log.Printf("AddItem cart lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	cart.Products = MergeLineItem(cart.Products, models.CartLineItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Amount:    req.Amount,
	})

	opts := options.Replace().SetUpsert(true)
	if _, err := m.store.Carts.ReplaceOne(ctx, bson.M{"id": cart.ID}, cart, opts); err != nil {
		log.Printf("AddItem persist error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cart)
}

// GetCart returns one user's cart with product references populated.
func (m *Manager) GetCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := ps.ByName("userId")

	var cart models.Cart
	err := m.store.Carts.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found for the given userId")
		return
	} else if err != nil {
		log.Printf("GetCart lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	resolved, err := m.resolve(ctx, cart)
	if err != nil {
		log.Printf("GetCart resolve error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve cart products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resolved)
}

// RemoveItem filters the line item out of the cart. An absent cart is 404;
// removing a product that is not present is a no-op returning the cart.
func (m *Manager) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := ps.ByName("userId")
	productID := ps.ByName("productId")

	var cart models.Cart
	err := m.store.Carts.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found for the given userId")
		return
	} else if err != nil {
		log.Printf("RemoveItem lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	cart.Products = RemoveLineItem(cart.Products, productID)

	if _, err := m.store.Carts.ReplaceOne(ctx, bson.M{"id": cart.ID}, cart); err != nil {
		log.Printf("RemoveItem persist error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, cart)
}

// ListCarts returns every cart with products populated.
func (m *Manager) ListCarts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := m.store.Carts.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("ListCarts find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve carts")
		return
	}
	defer cursor.Close(ctx)

	var carts []models.Cart
	if err := cursor.All(ctx, &carts); err != nil {
		log.Printf("ListCarts cursor error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading carts")
		return
	}

	resolved := make([]models.ResolvedCart, 0, len(carts))
	for _, c := range carts {
		rc, err := m.resolve(ctx, c)
		if err != nil {
			log.Printf("ListCarts resolve error for cart %s: %v", c.ID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve cart products")
			return
		}
		resolved = append(resolved, rc)
	}

	utils.RespondWithJSON(w, http.StatusOK, resolved)
}

// ClearAll deletes every cart. Idempotent.
func (m *Manager) ClearAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := m.store.Carts.DeleteMany(ctx, bson.M{}); err != nil {
		log.Printf("ClearAll error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete carts")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "All carts have been deleted"})
}

// resolve joins each line item's productId against the product collection.
// Dangling references stay in the cart with a nil product.
func (m *Manager) resolve(ctx context.Context, cart models.Cart) (models.ResolvedCart, error) {
	resolved := models.ResolvedCart{
		ID:       cart.ID,
		UserID:   cart.UserID,
		Products: make([]models.ResolvedLineItem, 0, len(cart.Products)),
	}
	if len(cart.Products) == 0 {
		return resolved, nil
	}

	ids := make([]string, 0, len(cart.Products))
	for _, item := range cart.Products {
		ids = append(ids, item.ProductID)
	}

	cursor, err := m.store.Products.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return resolved, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return resolved, err
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range cart.Products {
		entry := models.ResolvedLineItem{CartLineItem: item}
		if p, ok := byID[item.ProductID]; ok {
			prod := p
			entry.Product = &prod
		}
		resolved.Products = append(resolved.Products, entry)
	}
	return resolved, nil
}
