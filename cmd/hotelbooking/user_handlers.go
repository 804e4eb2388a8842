package main

import (
	"errors"
	"net/http"
	"time"

	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

func register(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required,min=3,max=80"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := validate.Var(request.Email, "omitempty,email"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address", "field": "email"})
		return
	}

	var existing models.User
	if err := db.Where("username = ?", request.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username is already taken", "field": "username"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user := models.User{
		UserUid:      uuid.New().String(),
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userUid":  user.UserUid,
		"username": user.Username,
		"email":    user.Email,
	})
}

func login(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if !loginLimiter.Allow(request.Username) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many failed attempts, try again later"})
		return
	}

	var user models.User
	if err := db.Where("username = ?", request.Username).First(&user).Error; err != nil {
		loginLimiter.Failure(request.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		loginLimiter.Failure(request.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	loginLimiter.Success(request.Username)

	token, err := auth.IssueToken(&user, jwtSecret, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"userUid":  user.UserUid,
		"username": user.Username,
	})
}

func logout(c *gin.Context) {
	tokenID := c.GetString(auth.CtxTokenID)
	expiresAt := time.Now().Add(auth.TokenTTL)
	if v, ok := c.Get(auth.CtxTokenExp); ok {
		if t, ok := v.(time.Time); ok {
			expiresAt = t
		}
	}
	blocklist.Revoke(tokenID, expiresAt)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func getProfile(c *gin.Context) {
	userID := c.GetUint(auth.CtxUserID)

	profile, err := loadOrCreateProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userUid":  c.GetString(auth.CtxUserUid),
		"username": c.GetString(auth.CtxUsername),
		"phone":    profile.Phone,
		"address":  profile.Address,
	})
}

func updateProfile(c *gin.Context) {
	userID := c.GetUint(auth.CtxUserID)

	var request struct {
		Phone   string `json:"phone" binding:"max=20"`
		Address string `json:"address" binding:"max=100"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	profile, err := loadOrCreateProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	profile.Phone = request.Phone
	profile.Address = request.Address
	if err := db.Save(profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phone":   profile.Phone,
		"address": profile.Address,
	})
}

func loadOrCreateProfile(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{UserID: userID}
		err = db.Create(&profile).Error
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
