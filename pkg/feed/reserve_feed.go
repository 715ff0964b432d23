package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"teachfi/internal/handlers/business"
	dbconfig "teachfi/pkg/config"
)

const (
	// Connection states
	StateDisconnected = "disconnected"
	StateConnecting   = "connecting"
	StateConnected    = "connected"

	// Reconnect settings
	maxReconnectAttempts  = 10
	defaultReconnectDelay = 5 * time.Second
)

// ReserveTick is a single reserve update pushed by the DEX stream.
// Ticks carry their own timestamp; ordering is decided by that
// timestamp, not by arrival order.
type ReserveTick struct {
	PoolID         uint            `json:"pool_id"`
	Token0Reserve  decimal.Decimal `json:"token0_reserve"`
	Token1Reserve  decimal.Decimal `json:"token1_reserve"`
	Volume24h      decimal.Decimal `json:"volume_24h"`
	Token1PriceUsd decimal.Decimal `json:"token1_price_usd"`
	Timestamp      time.Time       `json:"timestamp"`
}

// ReserveListener maintains a WebSocket connection to the DEX reserve
// stream and applies each tick to the liquidity pool tables.
type ReserveListener struct {
	endpoint       string
	reconnectDelay time.Duration
	stopCh         chan bool
	status         string
}

// NewReserveListener creates a listener from FEED_URL and
// FEED_RECONNECT_SECONDS.
func NewReserveListener() (*ReserveListener, error) {
	endpoint := os.Getenv("FEED_URL")
	if endpoint == "" {
		return nil, fmt.Errorf("FEED_URL is required for the reserve feed listener")
	}

	delay := defaultReconnectDelay
	if v := os.Getenv("FEED_RECONNECT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			delay = time.Duration(secs) * time.Second
		}
	}

	return &ReserveListener{
		endpoint:       endpoint,
		reconnectDelay: delay,
		stopCh:         make(chan bool, 1),
		status:         StateDisconnected,
	}, nil
}

// Run connects to the reserve stream and blocks, reconnecting on
// failure until Stop is called or the reconnect attempts run out.
func (l *ReserveListener) Run() {
	reconnectAttempts := 0

	for {
		select {
		case <-l.stopCh:
			log.Info("Reserve feed listener stopped")
			return
		default:
			l.status = StateConnecting

			c, _, err := websocket.DefaultDialer.Dial(l.endpoint, nil)
			if err != nil {
				log.WithFields(log.Fields{
					"endpoint": l.endpoint,
					"error":    err.Error(),
				}).Error("Failed to connect to reserve feed")
				reconnectAttempts++
				if reconnectAttempts >= maxReconnectAttempts {
					log.WithFields(log.Fields{
						"reconnect_attempts": reconnectAttempts,
					}).Error("Max reconnect attempts reached, stopping reserve feed listener")
					return
				}
				time.Sleep(l.reconnectDelay)
				continue
			}

			l.status = StateConnected
			reconnectAttempts = 0
			log.WithFields(log.Fields{
				"endpoint": l.endpoint,
			}).Info("Connected to reserve feed")

			l.readTicks(c)

			l.status = StateDisconnected
			select {
			case <-l.stopCh:
				return
			default:
				time.Sleep(l.reconnectDelay)
			}
		}
	}
}

// Stop signals the listener to shut down.
func (l *ReserveListener) Stop() {
	select {
	case l.stopCh <- true:
	default:
	}
}

// Status returns the current connection state.
func (l *ReserveListener) Status() string {
	return l.status
}

// readTicks consumes messages from the connection until it fails.
func (l *ReserveListener) readTicks(c *websocket.Conn) {
	defer c.Close()

	for {
		select {
		case <-l.stopCh:
			// put the signal back for Run to observe
			l.Stop()
			return
		default:
		}

		_, message, err := c.ReadMessage()
		if err != nil {
			log.WithFields(log.Fields{
				"error": err.Error(),
			}).Error("Error reading from reserve feed")
			return
		}

		var tick ReserveTick
		if err := json.Unmarshal(message, &tick); err != nil {
			log.WithFields(log.Fields{
				"error": err.Error(),
			}).Error("Failed to unmarshal reserve tick")
			continue
		}

		if tick.PoolID == 0 {
			log.Debug("Reserve tick without pool_id, skipping")
			continue
		}

		// Stale ticks (timestamp at or before the pool's last update)
		// are dropped inside UpdatePoolReserves without error.
		if err := business.UpdatePoolReserves(
			dbconfig.DB,
			tick.PoolID,
			tick.Token0Reserve,
			tick.Token1Reserve,
			tick.Volume24h,
			tick.Token1PriceUsd,
			tick.Timestamp,
		); err != nil {
			log.WithFields(log.Fields{
				"pool_id": tick.PoolID,
				"error":   err.Error(),
			}).Error("Failed to apply reserve tick")
			continue
		}

		log.WithFields(log.Fields{
			"pool_id":        tick.PoolID,
			"token0_reserve": tick.Token0Reserve.String(),
			"token1_reserve": tick.Token1Reserve.String(),
			"timestamp":      tick.Timestamp,
		}).Debug("Applied reserve tick")
	}
}
