// Package render formats decoded chain records into aligned text tables.
// It is pure presentation: no validation, no chain access.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/chaindata"
)

// EmissionShares returns each row's fraction of the table's total
// emission. A zero total yields all-zero shares rather than NaN.
func EmissionShares(emission []balance.Balance) []float64 {
	taos := make([]float64, len(emission))
	for i, e := range emission {
		taos[i] = e.Tao()
	}
	shares := make([]float64, len(emission))
	total := floats.Sum(taos)
	if total == 0 {
		return shares
	}
	for i, t := range taos {
		shares[i] = t / total
	}
	return shares
}

func shortAddress(addr string) string {
	if len(addr) <= 16 {
		return addr
	}
	return addr[:8] + "..." + addr[len(addr)-8:]
}

// RootTable renders the root subnet (netuid 0): per-uid hotkey, coldkey,
// global stake and emission share.
func RootTable(out io.Writer, state chaindata.SubnetState) error {
	if state.IsNull {
		_, err := fmt.Fprintln(out, "Subnet 0 does not exist")
		return err
	}

	shares := EmissionShares(state.Emission)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UID\tHOTKEY\tCOLDKEY\tSTAKE (τ)\tEMISSION\tEMISSION %")
	for i := range state.Hotkeys {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.4f\n",
			i,
			shortAddress(state.Hotkeys[i]),
			shortAddress(state.Coldkeys[i]),
			state.GlobalStake[i],
			state.Emission[i],
			shares[i],
		)
	}
	return w.Flush()
}

// SubnetHeader renders the one-line subnet identity and pool summary from
// a DynamicInfo record.
func SubnetHeader(out io.Writer, info chaindata.DynamicInfo) error {
	if info.IsNull {
		_, err := fmt.Fprintf(out, "Subnet %d does not exist\n", info.Netuid)
		return err
	}
	unit := balance.GetUnit(info.Netuid)
	_, err := fmt.Fprintf(out,
		"Subnet %d: %s (%s)\n  Price: %.9f τ/%s  Emission: %s  Tempo: %d  Blocks since step: %d\n  Owner: %s\n",
		info.Netuid, info.SubnetName, info.Symbol,
		info.Price(), unit,
		info.Emission, info.Tempo, info.BlocksSinceLastStep,
		info.OwnerColdkey,
	)
	return err
}

// SubnetTable renders a non-root subnet's per-uid state: local and global
// stake, stake weight, scores and emission share in the subnet's unit.
func SubnetTable(out io.Writer, state chaindata.SubnetState) error {
	if state.IsNull {
		_, err := fmt.Fprintf(out, "Subnet %d does not exist\n", state.Netuid)
		return err
	}

	unit := balance.GetUnit(state.Netuid)
	shares := EmissionShares(state.Emission)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "UID\tSTAKE (%s)\tSTAKE (τ)\tWEIGHT\tDIVIDENDS\tINCENTIVE\tEMISSION (%s)\tEMISSION %%\tHOTKEY\n", unit, unit)
	for i := range state.Hotkeys {
		fmt.Fprintf(w, "%d\t%.9f\t%.9f\t%.4f\t%.4f\t%.4f\t%.9f\t%.4f\t%s\n",
			i,
			state.LocalStake[i].Tao(),
			state.GlobalStake[i].Tao(),
			state.StakeWeight[i],
			state.Dividends[i],
			state.Incentives[i],
			state.Emission[i].Tao(),
			shares[i],
			shortAddress(state.Hotkeys[i]),
		)
	}
	return w.Flush()
}
