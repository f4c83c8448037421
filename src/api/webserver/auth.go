package webserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/veritylabs/verityai/src/api/auth"
	"github.com/veritylabs/verityai/src/api/types"
)

type Auth struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuth(db *gorm.DB, secret []byte) Auth {
	return Auth{db: db, jwtSecret: secret}
}

func (a Auth) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		respondErr(c, http.StatusBadRequest, "Please provide name, email and password")
		return
	}
	if len(req.Password) < 6 {
		respondErr(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	var existing types.User
	err := a.db.First(&existing, "email = ?", req.Email).Error
	if err == nil {
		respondErr(c, http.StatusBadRequest, "Email already registered")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[auth] register lookup failed: %v", err)
		respondErr(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[auth] password hash failed: %v", err)
		respondErr(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := types.User{Name: req.Name, Email: req.Email, PasswordHash: string(hash)}
	if err := a.db.Create(&user).Error; err != nil {
		// Unique index on email closes the lookup/create race.
		log.Printf("[auth] register failed for %s: %v", req.Email, err)
		respondErr(c, http.StatusBadRequest, "Email already registered")
		return
	}

	token, err := auth.IssueToken(user.ID, a.jwtSecret)
	if err != nil {
		log.Printf("[auth] failed to issue token: %v", err)
		respondErr(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}

func (a Auth) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondErr(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	// Unknown email and wrong password produce the same response, so the
	// endpoint cannot be used to enumerate accounts.
	var user types.User
	if err := a.db.First(&user, "email = ?", req.Email).Error; err != nil {
		respondErr(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondErr(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(user.ID, a.jwtSecret)
	if err != nil {
		log.Printf("[auth] failed to issue token: %v", err)
		respondErr(c, http.StatusInternalServerError, "Login failed")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
	})
}

func (a Auth) Me(c *gin.Context) {
	userID := c.GetUint("userID")

	var user types.User
	if err := a.db.First(&user, userID).Error; err != nil {
		respondErr(c, http.StatusNotFound, "User not found")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"createdAt": user.CreatedAt,
	})
}
