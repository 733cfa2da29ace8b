package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/prepbot/internal/bot"
	"github.com/example/prepbot/internal/database"
	"github.com/example/prepbot/internal/planner"
	"github.com/joho/godotenv"
)

func main() {
	// Load optional .env configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Create a channel for signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Connect to the database
	err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	p := planner.New(database.NewStudyPlanRepository())

	b, err := bot.New(p)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Channel to wait for the bot to finish
	done := make(chan struct{})

	// Goroutine for signal handling
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v\n", sig)
		b.Stop()
		close(done)
	}()

	// Run the bot
	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(); err != nil {
			log.Printf("Bot error: %v", err)
		}
	}()

	// Wait for termination
	<-done
	log.Println("Bot stopped successfully")
}
