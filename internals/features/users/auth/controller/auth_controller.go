// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CherylPlj/HRMS-sub008/internals/configs"
	m "github.com/CherylPlj/HRMS-sub008/internals/features/users/auth/model"
	helper "github.com/CherylPlj/HRMS-sub008/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *AuthController {
	return &AuthController{DB: db, Validate: v}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // username or email
	Password   string `json:"password" validate:"required"`
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}

	ident := strings.TrimSpace(strings.ToLower(req.Identifier))
	var user m.UserModel
	err := ctl.DB.WithContext(c.UserContext()).
		Where("LOWER(user_name) = ? OR LOWER(email) = ?", ident, ident).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if !user.IsActive {
		return helper.JsonError(c, http.StatusForbidden, "Account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "Invalid credentials")
	}

	if configs.JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is empty, cannot issue token")
		return helper.JsonError(c, http.StatusInternalServerError, "Missing JWT Secret")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, "Failed to sign token")
	}

	return helper.JsonOK(c, "login success", fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"user_id":   user.UserID,
			"user_name": user.UserName,
			"role":      user.Role,
		},
	})
}
