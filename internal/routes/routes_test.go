package routes

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Building the router exercises gin's route-tree conflict checks, which
// panic on incompatible wildcard names at the same path segment.
func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var r *gin.Engine
	require.NotPanics(t, func() { r = SetupRouter() })

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /staking-pools",
		"POST /staking/stake",
		"POST /staking/unstake/:id",
		"POST /staking/claim/:id",
		"GET /staking/info/:wallet",
		"POST /beneficiary/select",
		"GET /liquidity-pools/:id",
		"GET /liquidity/positions/wallet/:wallet",
		"GET /liquidity/positions/:id/transactions",
		"POST /liquidity/positions/:id/revalue",
		"GET /vesting/schedule/:id",
		"GET /snapshots/:series/latest",
		"POST /chain/events",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}
