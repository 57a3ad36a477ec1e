package main

import (
	"context"
	"flag"

	"revuea.app/configs"
	"revuea.app/configs/configsdatabase"
	"revuea.app/configs/configslog"
	"revuea.app/database"
	"revuea.app/pkg/summarizer"
	"revuea.app/routes"
	"revuea.app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Sunucu başlamadan önce migrasyonları çalıştır")
	seedFlag := flag.Bool("seed", false, "Sunucu başlamadan önce seederları çalıştır")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	if *migrateFlag || *seedFlag {
		database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag)
	}

	// Özet sağlayıcısı: GEMINI_API_KEY yoksa uç 500 döndürür ama sunucu çalışır.
	var provider summarizer.ISummaryProvider
	if p, err := summarizer.NewGeminiProvider(context.Background()); err != nil {
		configslog.SLog.Warn("Gemini sağlayıcısı kurulamadı, özet ucu devre dışı.", zap.Error(err))
		provider = summarizer.DisabledProvider{}
	} else {
		provider = p
	}

	app := fiber.New(fiber.Config{
		AppName: "Revuea API",
	})

	routes.SetupRoutes(app, services.NewSummaryService(provider))

	addr := ":" + configs.GetPort()
	configslog.SLog.Infof("Sunucu %s adresinde dinliyor...", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
