package business

import (
	"fmt"
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChainEventMessage is the confirmation payload delivered by the chain
// intake queue. Amounts arrive as decimal strings; nothing on this boundary
// is a binary float.
type ChainEventMessage struct {
	WalletAddress      string          `json:"wallet_address"`
	TxHash             string          `json:"tx_hash"`
	EventType          string          `json:"event_type"`
	Amount             decimal.Decimal `json:"amount"`
	Token0Amount       decimal.Decimal `json:"token0_amount"`
	Token1Amount       decimal.Decimal `json:"token1_amount"`
	LpTokenAmount      decimal.Decimal `json:"lp_token_amount"`
	PoolID             uint            `json:"pool_id"`
	ReferenceID        uint            `json:"reference_id"`
	Status             string          `json:"status"`
	BlockConfirmations int             `json:"block_confirmations"`
	Timestamp          time.Time       `json:"timestamp"`
}

// ProcessChainEvent records the event and, for confirmed events, applies it
// to the owning ledger. Pending and failed events are recorded but mutate
// nothing; replays of an already processed tx hash are no-ops so the intake
// can redeliver safely.
//
// The event upsert, the ledger mutation and the processed flag commit
// together. A crash mid-apply rolls back the whole delivery, so the requeued
// message finds the event unprocessed and applies it exactly once; the
// ledger calls inside run as savepoints of this transaction. The tx-hash row
// lock serializes concurrent redeliveries of the same hash.
func ProcessChainEvent(db *gorm.DB, msg *ChainEventMessage) error {
	wallet, err := NormalizeWallet(msg.WalletAddress)
	if err != nil {
		return err
	}

	// Pending/failed deliveries commit their event record and report the
	// status error afterwards, so the record survives the rollback-on-error
	// transaction semantics.
	var notConfirmed error
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.ChainEvent
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tx_hash = ?", msg.TxHash).First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if err == nil && existing.Processed {
			return nil
		}

		event := models.ChainEvent{
			WalletAddress:      wallet,
			TxHash:             msg.TxHash,
			EventType:          msg.EventType,
			Amount:             msg.Amount,
			PoolID:             msg.PoolID,
			ReferenceID:        msg.ReferenceID,
			Status:             msg.Status,
			BlockConfirmations: msg.BlockConfirmations,
		}
		if existing.ID != 0 {
			event = existing
			event.Status = msg.Status
			event.BlockConfirmations = msg.BlockConfirmations
		}
		if err := tx.Save(&event).Error; err != nil {
			return err
		}

		if msg.Status != models.ChainEventStatusConfirmed {
			notConfirmed = fmt.Errorf("%w: tx %s is %s", ErrTransactionNotConfirmed, msg.TxHash, msg.Status)
			return nil
		}

		asOf := msg.Timestamp
		if asOf.IsZero() {
			asOf = time.Now()
		}

		switch msg.EventType {
		case models.ChainEventStake:
			_, err = Stake(tx, wallet, msg.PoolID, msg.Amount, msg.TxHash, asOf)
		case models.ChainEventUnstake:
			_, err = Unstake(tx, msg.ReferenceID, asOf)
		case models.ChainEventClaim:
			_, err = Claim(tx, msg.ReferenceID, msg.TxHash, asOf)
		case models.ChainEventLiquidityAdd:
			_, err = OpenPosition(tx, wallet, msg.PoolID, msg.Token0Amount, msg.Token1Amount, msg.LpTokenAmount, msg.TxHash, asOf)
		case models.ChainEventLiquidityRemove:
			_, err = ClosePosition(tx, msg.ReferenceID, msg.TxHash, asOf)
		case models.ChainEventClaimFees:
			err = RecordFeeClaim(tx, msg.ReferenceID, msg.Amount, msg.TxHash, asOf)
		default:
			err = fmt.Errorf("unsupported chain event type: %s", msg.EventType)
		}
		if err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&event).Updates(map[string]interface{}{
			"processed":    true,
			"processed_at": now,
		}).Error
	})
	if err != nil {
		return err
	}
	return notConfirmed
}
