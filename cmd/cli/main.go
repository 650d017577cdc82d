package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	appdb "github.com/yourorg/safarlahore/internal/db"
	"github.com/yourorg/safarlahore/internal/models"
	"github.com/yourorg/safarlahore/internal/seed"
)

func main() {
	_ = godotenv.Load()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("==== SafarLahore CLI ====")
		fmt.Println("1) Health check API")
		fmt.Println("2) Seed Lahore transit network")
		fmt.Println("3) Plan a journey")
		fmt.Println("4) Exit")
		fmt.Print("Select option: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			doHealthCheck()
		case "2":
			doSeed()
		case "3":
			doPlan(reader)
		case "4":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Invalid option")
		}
		fmt.Println()
	}
}

func baseURL() string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://127.0.0.1:8080"
	}
	return strings.TrimRight(base, "/")
}

func doHealthCheck() {
	resp, err := http.Get(baseURL() + "/api/health")
	if err != nil {
		fmt.Println("Health: ERROR:", err)
		return
	}
	defer resp.Body.Close()
	fmt.Println("Health status:", resp.Status)
}

func doSeed() {
	db, err := appdb.Connect()
	if err != nil {
		log.Println("DB connect error:", err)
		return
	}
	defer db.Close()
	if err := appdb.EnsureSchema(db); err != nil {
		log.Println("Ensure schema error:", err)
		return
	}
	if err := seed.Run(db); err != nil {
		log.Println("Seed error:", err)
		return
	}
	fmt.Println("Seed: Lahore transit network created")
	fmt.Println("Tip: POST /api/admin/reload so a running server picks up the new data")
}

func doPlan(reader *bufio.Reader) {
	origin, ok := readCoordinate(reader, "Origin")
	if !ok {
		return
	}
	dest, ok := readCoordinate(reader, "Destination")
	if !ok {
		return
	}

	fmt.Print("Preference (fastest/least-walking/least-transfers, empty for fastest): ")
	prefLine, _ := reader.ReadString('\n')
	pref := models.Preference(strings.TrimSpace(prefLine)).OrDefault()

	payload, _ := json.Marshal(models.PlanRouteRequest{
		Origin:      origin,
		Destination: dest,
		Preference:  pref,
	})

	resp, err := http.Post(baseURL()+"/api/transit/plan", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Println("Plan: ERROR:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Plan: %s: %s\n", resp.Status, string(body))
		return
	}

	var route models.PlannedRoute
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		fmt.Println("Plan: decode error:", err)
		return
	}
	printRoute(route)
}

func readCoordinate(reader *bufio.Reader, label string) (models.Coordinate, bool) {
	fmt.Printf("%s (lat,lng): ", label)
	line, _ := reader.ReadString('\n')
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 2 {
		fmt.Println("Expected: lat,lng")
		return models.Coordinate{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		fmt.Println("Invalid numbers")
		return models.Coordinate{}, false
	}
	return models.Coordinate{Lat: lat, Lng: lng}, true
}

func printRoute(route models.PlannedRoute) {
	fmt.Printf("Journey: %d min, %d transfer(s), %.0fm walking\n",
		route.EstimatedTime, route.Transfers, route.WalkingDistance)
	for i, step := range route.Steps {
		label := string(step.Type)
		if step.Route != "" {
			label += " (" + step.Route + ")"
		}
		fmt.Printf("  %d. [%s] %s -> %s, %d min\n", i+1, label, step.From, step.To, step.Time)
	}
}
