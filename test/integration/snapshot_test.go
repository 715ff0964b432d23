package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TreasurySnapshot struct {
	ID            uint   `json:"id"`
	BalanceTokens string `json:"balance_tokens"`
	IsLatest      bool   `json:"is_latest"`
	SnapshotTime  string `json:"snapshot_time"`
}

func recordTreasurySnapshot(t *testing.T, balance string) TreasurySnapshot {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"balance_tokens": balance,
	})
	require.NoError(t, err)

	resp, err := http.Post(BaseURL+"/snapshots/treasury", "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var snapshot TreasurySnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
	return snapshot
}

// Recording a snapshot flips the previous latest row in the same
// transaction, so the series never shows zero or two latest rows.
func TestSnapshotLatestFlip(t *testing.T) {
	first := recordTreasurySnapshot(t, "100000")
	second := recordTreasurySnapshot(t, "125000")
	require.NotEqual(t, first.ID, second.ID)

	t.Run("Exactly One Latest Row", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/snapshots/treasury?limit=1000")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var history []TreasurySnapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
		require.GreaterOrEqual(t, len(history), 2)

		latestCount := 0
		for _, snapshot := range history {
			if snapshot.IsLatest {
				latestCount++
				assert.Equal(t, second.ID, snapshot.ID)
			}
		}
		assert.Equal(t, 1, latestCount)
	})

	t.Run("Latest Endpoint Returns Newest", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/snapshots/treasury/latest")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var latest []TreasurySnapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&latest))
		require.Len(t, latest, 1)
		assert.Equal(t, second.ID, latest[0].ID)
		assert.Equal(t, "125000", latest[0].BalanceTokens)
	})

	t.Run("Unknown Series Rejected", func(t *testing.T) {
		resp, err := http.Get(BaseURL + "/snapshots/nonsense/latest")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
