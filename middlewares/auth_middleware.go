package middlewares

import (
	"strconv"
	"strings"

	"revuea.app/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalsUserIDKey doğrulanmış kullanıcının ID'sinin saklandığı locals anahtarı.
const LocalsUserIDKey = "userID"

// AuthMiddleware Authorization başlığındaki bearer tokenı doğrular ve
// kullanıcı ID'sini locals'a yazar. Eksik veya geçersiz token 401 döndürür.
func AuthMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return configs.GetJWTSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid token"})
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid token"})
	}

	c.Locals(LocalsUserIDKey, uint(userID))
	return c.Next()
}

// CurrentUserID locals'tan doğrulanmış kullanıcı ID'sini okur.
// AuthMiddleware'den geçmemiş isteklerde 0 döner.
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalsUserIDKey).(uint); ok {
		return id
	}
	return 0
}
