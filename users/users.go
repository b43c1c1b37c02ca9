package users

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"shoply/db"
	"shoply/globals"
	"shoply/middleware"
	"shoply/models"
	"shoply/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

// Service owns user registration, login, and the user collection reads.
type Service struct {
	store *db.Store
}

func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" || req.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	// Email is the login key; reject duplicates up front.
	var existing models.User
	err := s.store.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "User already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("Register lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", req.Email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user := models.User{
		ID:        utils.NewID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Phone:     req.Phone,
		CreatedAt: time.Now(),
	}

	if _, err := s.store.Users.InsertOne(ctx, user); err != nil {
		log.Printf("Register insert error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a one-hour JWT.
func (s *Service) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	var stored models.User
	err := s.store.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&stored)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusBadRequest, "User not found")
		return
	} else if err != nil {
		log.Printf("Login lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(req.Password)); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid password")
		return
	}

	tokenString, err := GenerateToken(stored)
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", stored.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if _, err := s.store.Users.UpdateOne(ctx,
		bson.M{"id": stored.ID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	); err != nil {
		log.Printf("Login last_login update error: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   tokenString,
	})
}

// GenerateToken signs a one-hour access token for the user.
func GenerateToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Email:  user.Email,
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// ListUsers returns every user document.
func (s *Service) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := s.store.Users.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("ListUsers find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		log.Printf("ListUsers cursor error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// DeleteAllUsers wipes the collection. Idempotent.
func (s *Service) DeleteAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := s.store.Users.DeleteMany(ctx, bson.M{}); err != nil {
		log.Printf("DeleteAllUsers error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "All users have been deleted"})
}
