package main

import (
	"log"
	"net/http"
	"os"

	"sueca-game/internal/database"
	"sueca-game/internal/server"
)

func main() {
	log.Println("Starting Sueca server...")

	db := database.New()
	defer db.Close()

	hub := server.NewHub(&db)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})

	server.HandleRoutes(&db)

	addr := os.Getenv("SUECA_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}
