package main

import (
	"log"

	"github.com/joho/godotenv"

	"Monjez/FiberConfig"
	"Monjez/Models"
	"Monjez/Notify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	Models.Connect()

	scheduler := Notify.NewDigestScheduler(Models.DB)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start digest scheduler: %v", err)
	}
	defer scheduler.Stop()

	FiberConfig.FiberConfig()
}
