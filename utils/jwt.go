package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"coreops-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Ошибки проверки токена
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims представляет структуру JWT токена
type Claims struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}

// JWTSecret возвращает секретный ключ подписи из переменной окружения
// или дефолтный
func JWTSecret() []byte {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		secretKey = "coreops-secret-key-change-in-production"
	}
	return []byte(secretKey)
}

// GenerateJWT создает JWT токен для пользователя
func GenerateJWT(userID uint, userName string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Токен действителен 24 часа
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JWTSecret())
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateJWT проверяет и парсит JWT токен.
// Просроченный токен отличается от испорченного.
func ValidateJWT(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return JWTSecret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// TokenFromHeader извлекает bearer-токен из заголовка Authorization
func TokenFromHeader(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return ""
	}
	return tokenParts[1]
}

// AuthMiddleware возвращает middleware проверки JWT токена.
// Загружает живого пользователя из базы в контекст запроса.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := TokenFromHeader(c)
		if tokenString == "" {
			// Запасной вариант: токен в cookie
			tokenString = c.Cookies("token")
		}
		if tokenString == "" {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Authorization header required",
			})
		}

		claims, err := ValidateJWT(tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, ErrTokenExpired) {
				message = "Token expired"
			}
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		}

		var user models.User
		err = db.Where("id = ? AND is_deleted = ?", claims.UserID, false).
			First(&user).Error
		if err != nil {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}

		c.Locals("user", &user)
		c.Locals("user_id", user.ID)

		return c.Next()
	}
}

// CurrentUser возвращает пользователя текущего запроса
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
