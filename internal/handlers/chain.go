package handlers

import (
	"net/http"

	"teachfi/internal/handlers/business"
	dbconfig "teachfi/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SubmitChainEvent accepts a confirmed on-chain event and hands it to
// the worker through RabbitMQ. Without a broker the event is processed
// inline so single-process deployments still work.
func SubmitChainEvent(c *gin.Context) {
	var msg business.ChainEventMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg.TxHash == "" || msg.EventType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tx_hash and event_type are required"})
		return
	}

	if _, err := business.NormalizeWallet(msg.WalletAddress); err != nil {
		respondError(c, err)
		return
	}

	if dbconfig.RabbitMQ != nil {
		publisher, err := dbconfig.NewPublisher()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer publisher.Close()

		if err := publisher.Publish(dbconfig.ChainConfirmationsQueue, msg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"message": "Chain event queued",
			"tx_hash": msg.TxHash,
		})
		return
	}

	logrus.Warn("RabbitMQ not configured, processing chain event inline")
	if err := business.ProcessChainEvent(dbconfig.DB, &msg); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Chain event processed",
		"tx_hash": msg.TxHash,
	})
}
