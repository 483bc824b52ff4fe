// @title Pedagogia Backend API
// @version 1.0
// @description Servidor de acompanhamento de sondagens pedagógicas: fases do desenho (Lowenfeld) e da escrita (Ehri).

// @contact.name Suporte
// @contact.email suporte@pedagogia.local

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"

	"pedagogia_backend/internal/app"
	"pedagogia_backend/internal/config"
	"pedagogia_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "executa só a migração do banco e sai")
	migrate := flag.Bool("migrate", false, "força a migração do banco na subida")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Sync()

	if *migrateOnly {
		log.Println("Migração concluída, encerrando")
		return
	}

	application.Run()
}
