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

type SchoolBeneficiary struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Country       string `json:"country"`
	WalletAddress string `json:"wallet_address"`
	IsActive      bool   `json:"is_active"`
}

type BeneficiarySelection struct {
	ID            uint   `json:"id"`
	WalletAddress string `json:"wallet_address"`
	SchoolID      uint   `json:"school_id"`
	IsActive      bool   `json:"is_active"`
}

func TestSchoolBeneficiaryAPI(t *testing.T) {
	var schoolID uint
	wallet := "0x8ba1f109551bd432803012645ac136ddd64dba72"

	// Test Case 1: Create School
	t.Run("Create School", func(t *testing.T) {
		request := map[string]interface{}{
			"name":           "Integration Primary School",
			"country":        "Kenya",
			"wallet_address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			"description":    "integration fixture",
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/schools", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var school SchoolBeneficiary
		err = json.NewDecoder(resp.Body).Decode(&school)
		require.NoError(t, err)
		assert.Equal(t, "Integration Primary School", school.Name)
		// addresses are normalized to lowercase on the way in
		assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", school.WalletAddress)

		schoolID = school.ID
	})

	// Test Case 2: Select Beneficiary
	t.Run("Select Beneficiary", func(t *testing.T) {
		request := map[string]interface{}{
			"wallet_address": wallet,
			"school_id":      schoolID,
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/beneficiary/select", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var selection BeneficiarySelection
		err = json.NewDecoder(resp.Body).Decode(&selection)
		require.NoError(t, err)
		assert.Equal(t, schoolID, selection.SchoolID)
		assert.True(t, selection.IsActive)
	})

	// Test Case 3: Selection history keeps exactly one active row
	t.Run("History Has One Active Selection", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/beneficiary/history/%s", BaseURL, wallet))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var history []BeneficiarySelection
		err = json.NewDecoder(resp.Body).Decode(&history)
		require.NoError(t, err)
		require.NotEmpty(t, history)

		active := 0
		for _, s := range history {
			if s.IsActive {
				active++
			}
		}
		assert.Equal(t, 1, active)
	})

	// Test Case 4: Invalid wallet rejected
	t.Run("Invalid Wallet Rejected", func(t *testing.T) {
		request := map[string]interface{}{
			"wallet_address": "not-a-wallet",
			"school_id":      schoolID,
		}

		payload, err := json.Marshal(request)
		require.NoError(t, err)

		resp, err := http.Post(BaseURL+"/beneficiary/select", "application/json", bytes.NewBuffer(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
