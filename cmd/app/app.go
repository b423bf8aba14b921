package main

import (
	"os"

	"github.com/vitrine-shop/go-backend/internal/app"
	config "github.com/vitrine-shop/go-backend/internal/cfg"
	"github.com/vitrine-shop/go-backend/pkg/logger"
)

//	@title			Vitrine Catalog API
//	@version		1.0
//	@description	REST API каталога товаров
//	@BasePath		/

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		os.Exit(1)
	}
}
