package jwt

import (
	types "efood-checkout/internal/common/type"
	"efood-checkout/internal/pkg/helper"
	"efood-checkout/internal/pkg/logger"
	"efood-checkout/internal/pkg/validation"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionDataKey = "session_data"

	defaultSecret = "$d3f4uIt_s3cr3t_key#"
	defaultTTL    = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

var (
	mu     sync.RWMutex
	secret = []byte(defaultSecret)
	ttl    = defaultTTL
)

// Setup sets the signing secret and token lifetime. An empty secret keeps
// the built-in development key.
func Setup(jwtSecret string, tokenTTL time.Duration) {
	mu.Lock()
	defer mu.Unlock()

	if jwtSecret == "" {
		logger.Warning.Println("JWT_SECRET not found, using default secret")
		jwtSecret = defaultSecret
	}
	secret = []byte(jwtSecret)

	if tokenTTL > 0 {
		ttl = tokenTTL
	}
}

func signingKey() ([]byte, time.Duration) {
	mu.RLock()
	defer mu.RUnlock()
	return secret, ttl
}

func GenerateToken(data types.SessionWithAuth) (string, *time.Time, error) {
	key, tokenTTL := signingKey()
	exp := time.Now().Add(tokenTTL)
	data.ExpiresAt = exp

	claims := jwt.MapClaims{
		"exp":          exp.Unix(),
		"sub":          data.SessionID,
		SessionDataKey: data,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(key)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, &exp, nil
}

func ValidateToken(jwtToken string) (*types.SessionWithAuth, error) {
	key, _ := signingKey()

	token, err := jwt.Parse(jwtToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims[SessionDataKey] == nil {
		return nil, fmt.Errorf("%w: session data not found in token claims", ErrInvalidToken)
	}

	session, err := helper.JSONToStruct[types.SessionWithAuth](claims[SessionDataKey])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if err := validation.Validate(session); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return session, nil
}
