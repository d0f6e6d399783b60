package main

import (
	"testing"
	"time"

	"coreops-backend/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := utils.GenerateJWT(42, "member")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := utils.ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "member", claims.UserName)
}

func TestValidateExpiredJWT(t *testing.T) {
	claims := &utils.Claims{
		UserID:   42,
		UserName: "member",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(utils.JWTSecret())
	assert.NoError(t, err)

	_, err = utils.ValidateJWT(tokenString)
	assert.ErrorIs(t, err, utils.ErrTokenExpired)
}

func TestValidateMalformedJWT(t *testing.T) {
	_, err := utils.ValidateJWT("not-a-token")
	assert.ErrorIs(t, err, utils.ErrTokenInvalid)

	// Токен с чужой подписью тоже невалиден, но не просрочен
	otherClaims := jwt.MapClaims{"user_id": 1, "exp": time.Now().Add(time.Hour).Unix()}
	otherToken := jwt.NewWithClaims(jwt.SigningMethodHS256, otherClaims)
	signed, _ := otherToken.SignedString([]byte("wrong-secret"))

	_, err = utils.ValidateJWT(signed)
	assert.ErrorIs(t, err, utils.ErrTokenInvalid)
}
