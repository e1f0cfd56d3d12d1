package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	opts, err := config.LoadServer(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			fmt.Println("Usage: raytracer-web [-port N]  (or set RAYTRACER_PORT)")
			return
		}
		log.Printf("Invalid configuration: %v", err)
		os.Exit(2)
	}

	// Create and start web server
	webServer := server.NewServer(opts.Port)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", opts.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
