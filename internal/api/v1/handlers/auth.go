package handlers

import (
	"errors"
	"fmt"
	"time"

	"taskify/internal/config"
	"taskify/internal/models"
	"taskify/internal/repository"
	"taskify/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Auth handlers

// setSessionCookie memasang session token sebagai cookie HTTP-only.
// SameSite=Strict, flag Secure hanya aktif di production.
func setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   config.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func Register(c *fiber.Ctx) error {
	// struct RegisterRequest menerima inputan dari user
	type RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Bad request",
		})
	}

	// Validasi dengan validator
	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	// Cek apakah email sudah terdaftar
	if _, err := repository.FindUserByEmail(c.Context(), config.DB, req.Email); err == nil {
		logger.SecurityLogger.Warn("Duplicate email", zap.String("email", req.Email))
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "User already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error hashing password",
		})
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := repository.CreateUser(c.Context(), config.DB, user); err != nil {
		// Index unik tetap menangkap race antara pengecekan di atas
		// dan insert
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"message": "User already exists",
			})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error creating user",
		})
	}

	// Password tidak ikut ter-serialize (json:"-" pada model)
	logger.AuditLogger.Info("User registered successfully", zap.String("userID", user.ID.Hex()))
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}

// fungsi login dengan session token JWT yang dibawa lewat cookie
func Login(c *fiber.Ctx) error {
	// struct LoginRequest menerima inputan dari user
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Bad request",
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	user, err := repository.FindUserByEmail(c.Context(), config.DB, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.SecurityLogger.Warn("User not found", zap.String("email", req.Email))
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching user",
		})
	}

	// user.Password -> hash yang ada di database
	// req.Password -> password yang dikirimkan oleh user
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.String("email", req.Email))
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Invalid credentials",
		})
	}

	// membuat session token dengan subject = user id
	expires := time.Now().Add(config.TokenExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  user.ID.Hex(),
		"exp": expires.Unix(),
	})
	tokenString, err := token.SignedString(config.SecretKey)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error generating token",
		})
	}

	setSessionCookie(c, tokenString, expires)

	logger.AuditLogger.Info("Login success", zap.String("user_id", user.ID.Hex()))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User logged in successfully",
		"data": fiber.Map{
			"user":  user,
			"token": tokenString,
		},
	})
}

// Logout menghapus session cookie. Selalu berhasil, idempotent.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   config.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User logged out successfully",
	})
}

// Verify memeriksa session cookie lalu me-resolve user-nya ke store,
// sehingga token milik user yang sudah dihapus ikut tertolak.
func Verify(c *fiber.Ctx) error {
	tokenString := c.Cookies("token")
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Unauthorized",
		})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.SecretKey, nil
	})
	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Invalid or expired token",
		})
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Invalid or expired token",
		})
	}
	idHex, _ := claims["id"].(string)
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Invalid or expired token",
		})
	}

	user, err := repository.FindUserByID(c.Context(), config.DB, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching user",
		})
	}

	// Ikutkan task milik user pada respons
	tasks, err := repository.TasksByOwner(c.Context(), config.DB, user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Error fetching tasks",
		})
	}
	user.Tasks = tasks

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User verified",
		"data":    user,
	})
}
