package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"billsmith/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret []byte
	jwtExpire time.Duration
)

// ErrJWTSecretMissing 启用鉴权但未配置密钥
var ErrJWTSecretMissing = errors.New("auth.secret is required when auth is enabled")

// Claims JWT 载荷，Subject 为令牌持有者（如设备或人员名称）
type Claims struct {
	jwt.RegisteredClaims
}

// InitJWT 初始化 JWT 密钥和默认有效期
func InitJWT(cfg *config.Config) error {
	if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
		return ErrJWTSecretMissing
	}
	jwtSecret = []byte(cfg.Auth.Secret)
	jwtExpire = cfg.Auth.ExpireTime
	return nil
}

// GenerateToken 签发令牌，expire<=0 时使用配置的有效期
func GenerateToken(subject string, expire time.Duration) (string, error) {
	if len(jwtSecret) == 0 {
		return "", ErrJWTSecretMissing
	}
	if expire <= 0 {
		expire = jwtExpire
	}
	if expire <= 0 {
		expire = 24 * time.Hour
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "billsmith",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken 校验并解析令牌
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}

// JWTAuth 校验 Authorization: Bearer <token>
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "authorization header must be: Bearer <token>")
			return
		}

		claims, err := ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set("subject", claims.Subject)
		c.Next()
	}
}

// OptionalAuth auth.enabled=false 时直接放行
func OptionalAuth(cfg config.AuthConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return JWTAuth()
}

// GetCurrentSubject 获取当前令牌持有者，未鉴权时为空
func GetCurrentSubject(c *gin.Context) string {
	return c.GetString("subject")
}
