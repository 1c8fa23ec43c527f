package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/chaindata"
)

func TestEmissionShares(t *testing.T) {
	shares := EmissionShares([]balance.Balance{
		balance.FromTao(1),
		balance.FromTao(3),
	})
	require.InDelta(t, 0.25, shares[0], 1e-12)
	require.InDelta(t, 0.75, shares[1], 1e-12)
}

func TestEmissionSharesZeroTotal(t *testing.T) {
	shares := EmissionShares([]balance.Balance{
		balance.FromRao(0),
		balance.FromRao(0),
	})
	require.Equal(t, []float64{0, 0}, shares)
}

func TestEmissionSharesEmpty(t *testing.T) {
	require.Empty(t, EmissionShares(nil))
}

func sampleState(netuid int) chaindata.SubnetState {
	return chaindata.SubnetState{
		Netuid:      netuid,
		Hotkeys:     []string{"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"},
		Coldkeys:    []string{"5DAAnrj7VHTznn2AWBemMuyBwZWs6FNFjdyVXUeYum3PTXFy", "5HGjWAeFDfFCWPsjFQdVV2Msvz2XtMktvgocEZcCj68kUMaw"},
		LocalStake:  []balance.Balance{balance.FromTao(10), balance.FromTao(20)},
		GlobalStake: []balance.Balance{balance.FromTao(100), balance.FromTao(200)},
		StakeWeight: []float64{0.25, 0.75},
		Dividends:   []float64{0.1, 0.9},
		Incentives:  []float64{0.2, 0.8},
		Emission:    []balance.Balance{balance.FromTao(1), balance.FromTao(3)},
	}
}

func TestRootTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RootTable(&buf, sampleState(0)))

	out := buf.String()
	require.Contains(t, out, "UID")
	require.Contains(t, out, "0.2500")
	require.Contains(t, out, "0.7500")
	require.Contains(t, out, "5GrwvaEF...")
	require.Equal(t, 3, strings.Count(out, "\n"))
}

func TestSubnetTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SubnetTable(&buf, sampleState(1)))

	out := buf.String()
	require.Contains(t, out, balance.GetUnit(1))
	require.Contains(t, out, "10.000000000")
	require.Contains(t, out, "0.7500")
}

func TestTablesNullState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SubnetTable(&buf, chaindata.NullSubnetState()))
	require.Contains(t, buf.String(), "does not exist")
}

func TestSubnetHeader(t *testing.T) {
	var buf bytes.Buffer
	info := chaindata.DynamicInfo{
		Netuid:     1,
		SubnetName: "apex",
		Symbol:     "α",
		Tempo:      360,
		Emission:   balance.FromTao(1),
		TaoIn:      balance.FromTao(2),
		AlphaIn:    balance.FromTao(4),
	}
	require.NoError(t, SubnetHeader(&buf, info))
	require.Contains(t, buf.String(), "apex")
	require.Contains(t, buf.String(), "0.500000000")
}
