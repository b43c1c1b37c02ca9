package products

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

// Service owns the product catalog. Carts reference products by id string
// only; nothing here enforces referential integrity.
type Service struct {
	store     *db.Store
	uploadDir string
}

func NewService(store *db.Store, uploadDir string) *Service {
	return &Service{store: store, uploadDir: uploadDir}
}

type createProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

func (s *Service) CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Name == "" || req.Price < 0 || req.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	product := models.Product{
		ID:    utils.NewID(),
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}

	if _, err := s.store.Products.InsertOne(ctx, product); err != nil {
		log.Printf("CreateProduct insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Product creation failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

func (s *Service) ListProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := s.store.Products.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("ListProducts find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Printf("ListProducts cursor error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, products)
}

func (s *Service) GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := s.store.Products.FindOne(ctx, bson.M{"id": ps.ByName("productId")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	} else if err != nil {
		log.Printf("GetProduct lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// UploadImage accepts a multipart image for a product and stores the
// original plus a 300px thumbnail.
func (s *Service) UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	var product models.Product
	err := s.store.Products.FindOne(ctx, bson.M{"id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	} else if err != nil {
		log.Printf("UploadImage lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if !utils.SupportedImageTypes[header.Header.Get("Content-Type")] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid file type. Supported formats: JPEG, PNG, GIF.")
		return
	}

	name, thumbName, err := utils.SaveImageWithThumb(file, header, s.uploadDir, 300)
	if err != nil {
		log.Printf("UploadImage save error (user %s): %v", utils.GetUserIDFromRequest(r), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	if _, err := s.store.Products.UpdateOne(ctx,
		bson.M{"id": productID},
		bson.M{"$set": bson.M{"image": name, "thumbnail": thumbName}},
	); err != nil {
		log.Printf("UploadImage update error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	product.Image = name
	product.Thumbnail = thumbName
	utils.RespondWithJSON(w, http.StatusOK, product)
}
