package server

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"sueca-game/internal/database"
)

// HandleRoutes registers the REST endpoints for browsing stored results.
func HandleRoutes(db *database.Service) {
	http.HandleFunc("/api/results", func(w http.ResponseWriter, r *http.Request) {
		GetResultsHandler(db, w, r)
	})
	log.Println("Registered route: /api/results")

	http.HandleFunc("/api/results/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetResultByIDHandler(db, w, r)
	})
	log.Println("Registered route: /api/results/{id}")

	http.HandleFunc("/api/results/player/{name}", func(w http.ResponseWriter, r *http.Request) {
		GetResultsByPlayerHandler(db, w, r)
	})
	log.Println("Registered route: /api/results/player/{name}")
}

func GetResultsHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	results, err := db.GetAll()
	if err != nil {
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func GetResultByIDHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Result id is required", http.StatusBadRequest)
		return
	}

	result, err := db.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Result not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch result", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func GetResultsByPlayerHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("name")
	if player == "" {
		http.Error(w, "Player name is required", http.StatusBadRequest)
		return
	}

	results, err := db.GetByPlayer(player)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "No results found for player", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
