package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Imadiyiz/nomination-advisor/internal/database"
	"github.com/Imadiyiz/nomination-advisor/internal/server"
)

func main() {
	log.Println("Starting Nomination server...")

	db := database.New()
	defer db.Close()

	hub := server.NewHub(&db)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})

	server.HandleRoutes(&db)

	addr := os.Getenv("NOMINATION_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Fatal(http.ListenAndServe(addr, nil))
}
