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

type StakingPool struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	MinStake       string `json:"min_stake"`
	MaxStake       string `json:"max_stake"`
	LockPeriodDays int    `json:"lock_period_days"`
	BaseAPY        string `json:"base_apy"`
	BonusAPY       string `json:"bonus_apy"`
	TotalStaked    string `json:"total_staked"`
	MaxPoolSize    string `json:"max_pool_size"`
	IsActive       bool   `json:"is_active"`
}

func TestStakingPoolAPI(t *testing.T) {
	var poolID uint

	// Test Case 1: Create Staking Pool
	t.Run("Create Staking Pool", func(t *testing.T) {
		request := map[string]interface{}{
			"name":             "integration-flexible-90d",
			"min_stake":        "100",
			"max_stake":        "50000",
			"lock_period_days": 90,
			"base_apy":         "10",
			"bonus_apy":        "5",
			"max_pool_size":    "1000000",
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/staking-pools", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var pool StakingPool
		err = json.NewDecoder(resp.Body).Decode(&pool)
		require.NoError(t, err)
		assert.Equal(t, "integration-flexible-90d", pool.Name)
		assert.Equal(t, "0", pool.TotalStaked)
		assert.True(t, pool.IsActive)

		poolID = pool.ID
	})

	// Test Case 2: Get Staking Pool
	t.Run("Get Staking Pool", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/staking-pools/%d", BaseURL, poolID))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var pool StakingPool
		err = json.NewDecoder(resp.Body).Decode(&pool)
		require.NoError(t, err)
		assert.Equal(t, poolID, pool.ID)
		assert.Equal(t, 90, pool.LockPeriodDays)
	})

	// Test Case 3: List Staking Pools
	t.Run("List Staking Pools", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/staking-pools")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var pools []StakingPool
		err = json.NewDecoder(resp.Body).Decode(&pools)
		require.NoError(t, err)
		assert.NotEmpty(t, pools)
	})

	// Test Case 4: Update Staking Pool
	t.Run("Update Staking Pool", func(t *testing.T) {
		request := map[string]interface{}{
			"name":             "integration-flexible-90d",
			"min_stake":        "200",
			"max_stake":        "50000",
			"lock_period_days": 90,
			"base_apy":         "12",
			"max_pool_size":    "1000000",
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		req, err := http.NewRequest(http.MethodPut,
			fmt.Sprintf("%s/staking-pools/%d", BaseURL, poolID), bytes.NewBuffer(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var pool StakingPool
		err = json.NewDecoder(resp.Body).Decode(&pool)
		require.NoError(t, err)
		assert.Equal(t, "200", pool.MinStake)
		assert.Equal(t, "12", pool.BaseAPY)
	})

	// Test Case 5: Stake preview rejects amounts outside pool limits
	t.Run("Preview Rejects Below Minimum", func(t *testing.T) {
		request := map[string]interface{}{
			"wallet_address": "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			"pool_id":        poolID,
			"amount":         "1",
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/staking/preview", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
