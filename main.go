package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"instakilo/app/auth"
	"instakilo/app/routes"
	"instakilo/app/storage"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("instakilo version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: instakilo <command> [options]
Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the API server.

Environment (optionally from a .env file):
  INSTAKILO_ADDR        Listen address (default :8080)
  INSTAKILO_DATA_DIR    Badger data directory (default data/badger)
  INSTAKILO_JWT_SECRET  HS256 token secret (required)
  INSTAKILO_JWT_ISSUER  Expected token issuer (required)
`
	fmt.Println(helpText)
}

func serve() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment as-is")
	}

	secret := os.Getenv("INSTAKILO_JWT_SECRET")
	issuer := os.Getenv("INSTAKILO_JWT_ISSUER")
	if secret == "" || issuer == "" {
		log.Fatal("INSTAKILO_JWT_SECRET and INSTAKILO_JWT_ISSUER must be set")
	}

	dataDir := os.Getenv("INSTAKILO_DATA_DIR")
	if dataDir == "" {
		dataDir = "data/badger"
	}
	addr := os.Getenv("INSTAKILO_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	store, err := storage.NewBadgerStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to open Badger store: %v", err)
	}
	defer store.Close()

	authenticator := auth.NewJWTAuthenticator([]byte(secret), issuer)
	router := routes.Setup(store, authenticator)

	log.Printf("Starting instakilo API on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
