package main

import (
	"flag"
	"log"

	"github.com/sekolahdigital/tamuadmin/internal/config"
	"github.com/sekolahdigital/tamuadmin/internal/devserver"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	app, err := devserver.New(cfg)
	if err != nil {
		log.Fatal("failed to create devserver: ", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("server error: ", err)
	}
}
