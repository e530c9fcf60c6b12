package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "migrate":
		err = runMigrate()
	case "check-db":
		err = runCheckDB()
	case "seed":
		err = runSeed()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("Commands:")
	fmt.Println("  migrate   Apply pending database migrations")
	fmt.Println("  check-db  Check if the database accepts connections")
	fmt.Println("  seed      Load sample catalog data for development")
}
