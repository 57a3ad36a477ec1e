package configs

import (
	"os"
	"strings"

	"revuea.app/configs/configsdatabase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

// GetDB repositories katmanının kullandığı kısayol.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// GetJWTSecret oturum tokenlarını imzalamak için kullanılan gizli anahtarı döndürür.
func GetJWTSecret() []byte {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		// Gizli anahtar olmadan token imzalamak production'da kabul edilemez;
		// geliştirme ortamı için sabit bir değere düşer.
		s = "revuea-dev-secret"
	}
	return []byte(s)
}

// GetPort HTTP sunucusunun dinleyeceği portu döndürür.
func GetPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8000"
}

// SetupCORS izin verilen originleri ortam değişkeninden okuyarak
// CORS middleware'ini oluşturur. CORS_ORIGINS virgülle ayrılmış listedir.
func SetupCORS() fiber.Handler {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173"
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(splitAndTrim(origins), ","),
		AllowHeaders:     "Content-Type, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	})
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
