package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"wejv/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const tokenLifetime = 120 * time.Minute

type (
	JWTService interface {
		GenerateTokenUser(userID uint, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (uint, string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    "WEJV",
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID uint, role string) (string, error) {
	if j.secretKey == "" {
		return "", errors.New("jwt secret is not configured")
	}

	now := j.now()
	claims := jwtUserClaim{
		strconv.FormatUint(uint64(userID), 10),
		role,
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (uint, string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", domain.ErrTokenExpired
		}
		return 0, "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return 0, "", domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok {
		return 0, "", domain.ErrTokenInvalid
	}

	id, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil || id == 0 {
		return 0, "", domain.ErrTokenInvalid
	}
	return uint(id), claims.Role, nil
}
