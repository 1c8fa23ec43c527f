// Package chaindata decodes raw SCALE-encoded chain responses into typed,
// normalized records. Decoded records are immutable once constructed and
// owned by the caller; the decoder holds no state.
package chaindata

import (
	"fmt"

	"github.com/tensorplex-labs/taocli/pkg/balance"
)

// NullAddress is the reserved address string carried by null sentinel
// records for entities that do not exist on chain.
const NullAddress = "000000000000000000000000000000000000000000000000"

// DecodeError wraps any failure to understand a chain-returned buffer.
// It is the one error kind expected to propagate out of query helpers;
// no partial records are ever returned alongside it.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %v", e.What, e.Err)
	}
	return fmt.Sprintf("decode %s", e.What)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AxonInfo describes a neuron's serving endpoint.
type AxonInfo struct {
	Block        uint64
	Version      uint32
	IP           string
	Port         uint16
	IPType       uint8
	Protocol     uint8
	Placeholder1 uint8
	Placeholder2 uint8
	Hotkey       string
	Coldkey      string
}

// PrometheusInfo describes a neuron's metrics endpoint.
type PrometheusInfo struct {
	Block   uint64
	Version uint32
	IP      string
	Port    uint16
	IPType  uint8
}

// NeuronInfo is the fully decoded metadata of a registered neuron.
// Score fields (Rank, Incentive, Consensus, Trust, ValidatorTrust,
// Dividends) are normalized into [0,1]; Emission is in tao units.
type NeuronInfo struct {
	Hotkey  string
	Coldkey string
	UID     int
	Netuid  int
	Active  bool

	// Stake is the total staked to this neuron; StakeDict breaks it down
	// per delegator coldkey. Stake always equals the sum of StakeDict.
	Stake      balance.Balance
	StakeDict  map[string]balance.Balance
	TotalStake balance.Balance

	Rank           float64
	Emission       float64
	Incentive      float64
	Consensus      float64
	Trust          float64
	ValidatorTrust float64
	Dividends      float64

	LastUpdate      uint64
	ValidatorPermit bool

	// Weights and Bonds are sparse adjacency lists of (peer uid, value)
	// pairs, preserved as exact integers in input order.
	Weights [][2]int
	Bonds   [][2]int

	PruningScore   int
	AxonInfo       AxonInfo
	PrometheusInfo PrometheusInfo

	// IsNull marks the "no such neuron" sentinel. A null record never
	// represents an error condition.
	IsNull bool
}

// NullNeuronInfo returns the sentinel for a neuron that does not exist.
func NullNeuronInfo() NeuronInfo {
	return NeuronInfo{
		Hotkey:    NullAddress,
		Coldkey:   NullAddress,
		StakeDict: map[string]balance.Balance{},
		Weights:   [][2]int{},
		Bonds:     [][2]int{},
		IsNull:    true,
	}
}

// SubnetState holds parallel per-uid sequences for one subnet: entry i of
// every slice describes the neuron registered at uid i. All slices have
// equal length.
type SubnetState struct {
	Netuid          int
	Hotkeys         []string
	Coldkeys        []string
	Active          []bool
	ValidatorPermit []bool
	PruningScore    []float64
	LastUpdate      []uint64
	Emission        []balance.Balance
	Dividends       []float64
	Incentives      []float64
	Consensus       []float64
	Trust           []float64
	Rank            []float64
	LocalStake      []balance.Balance
	GlobalStake     []balance.Balance
	StakeWeight     []float64
	EmissionHistory [][]balance.Balance

	IsNull bool
}

// NullSubnetState returns the sentinel for a subnet that does not exist.
func NullSubnetState() SubnetState {
	return SubnetState{IsNull: true}
}

// Len returns the number of registered uids.
func (s SubnetState) Len() int { return len(s.Hotkeys) }

// DynamicInfo is the decoded per-subnet header record: identity, token
// pool levels and the derived exchange rate.
type DynamicInfo struct {
	Netuid              int
	OwnerHotkey         string
	OwnerColdkey        string
	SubnetName          string
	Symbol              string
	Tempo               int
	LastStep            uint64
	BlocksSinceLastStep uint64
	Emission            balance.Balance
	AlphaIn             balance.Balance
	AlphaOut            balance.Balance
	TaoIn               balance.Balance
	TotalLocked         balance.Balance
	OwnerLocked         balance.Balance

	IsNull bool
}

// Price returns the tao-per-alpha exchange rate implied by the pool,
// zero when the subnet holds no alpha.
func (d DynamicInfo) Price() float64 {
	if d.AlphaIn.Rao == 0 {
		return 0
	}
	return d.TaoIn.Tao() / d.AlphaIn.Tao()
}

// NullDynamicInfo returns the sentinel for a subnet that does not exist.
func NullDynamicInfo() DynamicInfo {
	return DynamicInfo{
		OwnerHotkey:  NullAddress,
		OwnerColdkey: NullAddress,
		IsNull:       true,
	}
}
