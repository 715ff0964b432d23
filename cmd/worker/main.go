package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"

	"teachfi/internal/handlers/business"
	"teachfi/pkg/config"
	"teachfi/pkg/feed"

	logrus "github.com/sirupsen/logrus"
)

const (
	maxErrorCount = 3 // Maximum consecutive failures before dropping a message
)

var (
	// errorCounts tracks failure count per transaction hash
	errorCounts   = make(map[string]int)
	errorCountsMu sync.RWMutex
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	// Start the DEX reserve feed listener when configured
	if os.Getenv("FEED_URL") != "" {
		listener, err := feed.NewReserveListener()
		if err != nil {
			logrus.Fatal("Failed to create reserve feed listener: ", err)
		}
		go listener.Run()
		logrus.Info("Reserve feed listener started")
	} else {
		logrus.Info("FEED_URL not configured, skipping reserve feed listener")
	}

	// Create consumer for chain confirmation queue
	msgConsumer, err := config.NewConsumer(config.ChainConfirmationsQueue)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Chain Confirmation Worker started, waiting for messages...")

	// Start consuming messages
	err = msgConsumer.Consume(func(msg []byte) error {
		var eventMsg business.ChainEventMessage
		if err := json.Unmarshal(msg, &eventMsg); err != nil {
			logrus.Errorf("Failed to unmarshal message: %v", err)
			// Malformed payloads will never succeed on requeue
			return nil
		}

		logrus.WithFields(logrus.Fields{
			"tx_hash":    eventMsg.TxHash,
			"event_type": eventMsg.EventType,
			"wallet":     eventMsg.WalletAddress,
			"status":     eventMsg.Status,
		}).Info("Received chain event")

		if err := business.ProcessChainEvent(config.DB, &eventMsg); err != nil {
			if errors.Is(err, business.ErrTransactionNotConfirmed) {
				// The event was recorded as pending; a later confirmed
				// message for the same hash completes it
				logrus.Warnf("Transaction %s not confirmed yet, recorded as pending", eventMsg.TxHash)
				return nil
			}

			logrus.Errorf("Failed to process chain event %s: %v", eventMsg.TxHash, err)

			count := incrementErrorCount(eventMsg.TxHash)
			if count >= maxErrorCount {
				logrus.Warnf("Dropping chain event %s after %d failed attempts", eventMsg.TxHash, count)
				resetErrorCount(eventMsg.TxHash)
				return nil
			}
			return err
		}

		resetErrorCount(eventMsg.TxHash)
		logrus.Infof("Processed chain event: %s", eventMsg.TxHash)
		return nil
	})

	if err != nil {
		log.Fatal("Failed to start consumer: ", err)
	}
}

// incrementErrorCount increments the failure count for a transaction hash
func incrementErrorCount(txHash string) int {
	errorCountsMu.Lock()
	defer errorCountsMu.Unlock()

	errorCounts[txHash]++
	count := errorCounts[txHash]
	logrus.Warnf("Error count for tx %s: %d/%d", txHash, count, maxErrorCount)
	return count
}

// resetErrorCount resets the failure count for a transaction hash
func resetErrorCount(txHash string) {
	errorCountsMu.Lock()
	defer errorCountsMu.Unlock()

	delete(errorCounts, txHash)
}
