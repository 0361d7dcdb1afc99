package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsuiketsu/tsuika-api-sub000/internal/config"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/events"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/kafka"
	"github.com/tsuiketsu/tsuika-api-sub000/internal/redis"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// The consumer keeps the Redis folder ACL cache in step with sharing events
// so the server's access checks can hit the cache instead of the database.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	redisService := redis.NewService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisService == nil {
		log.Fatal("Failed to connect to Redis")
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, "acl-cache-updater")
	if err != nil {
		log.Fatalf("Failed to create Kafka consumer: %v", err)
	}

	consumer.RegisterHandler(events.FolderShared, applyGrant(redisService))
	consumer.RegisterHandler(events.FolderRoleChanged, applyGrant(redisService))
	consumer.RegisterHandler(events.FolderUnshared, removeGrant(redisService))

	go consumer.Start()
	log.Println("Kafka consumer started. Press Ctrl+C to exit.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down consumer...")
	consumer.Close()
	redisService.Close()
	log.Println("Consumer exited")
}

func applyGrant(redisService *redis.Service) kafka.EventHandler {
	return func(event events.ShareEvent) error {
		if event.TargetUserID == nil {
			return nil
		}
		folderID, targetID, err := parseIDs(event)
		if err != nil {
			return err
		}
		role := ""
		if event.Role != nil {
			role = *event.Role
		}
		log.Printf("[%s] Updating ACL cache: folder=%s user=%s role=%s", event.EventType, folderID, targetID, role)
		return redisService.AddFolderAccess(context.Background(), folderID, targetID, role)
	}
}

func removeGrant(redisService *redis.Service) kafka.EventHandler {
	return func(event events.ShareEvent) error {
		if event.TargetUserID == nil {
			return nil
		}
		folderID, targetID, err := parseIDs(event)
		if err != nil {
			return err
		}
		log.Printf("[%s] Removing from ACL cache: folder=%s user=%s", event.EventType, folderID, targetID)
		return redisService.RemoveFolderAccess(context.Background(), folderID, targetID)
	}
}

func parseIDs(event events.ShareEvent) (uuid.UUID, uuid.UUID, error) {
	folderID, err := uuid.Parse(event.FolderID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	targetID, err := uuid.Parse(*event.TargetUserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return folderID, targetID, nil
}
