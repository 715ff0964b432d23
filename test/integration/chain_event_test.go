package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type UserStakingInfo struct {
	WalletAddress string `json:"wallet_address"`
	Stakes        []struct {
		ID           uint   `json:"id"`
		StakedAmount string `json:"staked_amount"`
		TxHash       string `json:"stake_tx_hash"`
	} `json:"stakes"`
	TotalStaked string `json:"total_staked"`
}

// A redelivered confirmation must apply to the ledger exactly once. The
// second submission of the same tx hash is acknowledged but mutates nothing.
func TestChainEventReplay(t *testing.T) {
	wallet := "0x00000000000000000000000000000000000c0ffe"
	txHash := "0xfeed000000000000000000000000000000000000000000000000000000000001"

	// a pool with no lock so the event applies cleanly
	poolRequest := map[string]interface{}{
		"name":             "integration-replay-pool",
		"min_stake":        "100",
		"max_stake":        "50000",
		"lock_period_days": 0,
		"base_apy":         "10",
		"max_pool_size":    "1000000",
	}
	payload, err := json.Marshal(poolRequest)
	require.NoError(t, err)

	resp, err := http.Post(BaseURL+"/staking-pools", "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var pool StakingPool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pool))

	event := map[string]interface{}{
		"wallet_address": wallet,
		"tx_hash":        txHash,
		"event_type":     "STAKE",
		"amount":         "500",
		"pool_id":        pool.ID,
		"status":         "Confirmed",
	}
	payload, err = json.Marshal(event)
	require.NoError(t, err)

	// the suite runs the API without a broker, so events process inline
	t.Run("First Delivery Applies", func(t *testing.T) {
		resp, err := http.Post(BaseURL+"/chain/events", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Replay Is A No-Op", func(t *testing.T) {
		resp, err := http.Post(BaseURL+"/chain/events", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		infoResp, err := http.Get(BaseURL + "/staking/info/" + wallet)
		require.NoError(t, err)
		defer infoResp.Body.Close()
		require.Equal(t, http.StatusOK, infoResp.StatusCode)

		var info UserStakingInfo
		require.NoError(t, json.NewDecoder(infoResp.Body).Decode(&info))

		matching := 0
		for _, stake := range info.Stakes {
			if stake.TxHash == txHash {
				matching++
			}
		}
		assert.Equal(t, 1, matching, "tx hash must open exactly one stake")
		assert.Equal(t, "500", info.TotalStaked)
	})

	t.Run("Stake Endpoint Rejects Unrecorded Hash", func(t *testing.T) {
		request := map[string]interface{}{
			"wallet_address": wallet,
			"pool_id":        pool.ID,
			"amount":         "500",
			"tx_hash":        "0xfeed000000000000000000000000000000000000000000000000000000000bad",
		}
		body, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/staking/stake", "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Stake Endpoint Dedupes Applied Hash", func(t *testing.T) {
		request := map[string]interface{}{
			"wallet_address": wallet,
			"pool_id":        pool.ID,
			"amount":         "500",
			"tx_hash":        txHash,
		}
		body, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/staking/stake", "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		infoResp, err := http.Get(BaseURL + "/staking/info/" + wallet)
		require.NoError(t, err)
		defer infoResp.Body.Close()

		var info UserStakingInfo
		require.NoError(t, json.NewDecoder(infoResp.Body).Decode(&info))
		assert.Equal(t, "500", info.TotalStaked)
	})

	t.Run("Pool Total Counted Once", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/staking-pools/%d", BaseURL, pool.ID))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated StakingPool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		assert.Equal(t, "500", updated.TotalStaked)
	})
}
