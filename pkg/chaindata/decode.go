package chaindata

import (
	"bytes"
	"math/big"
	"net"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/vedhavyas/go-subkey"

	"github.com/tensorplex-labs/taocli/pkg/balance"
)

// ss58Format is the network identifier used when rendering account ids as
// human-readable addresses.
const ss58Format = 42

const u16Max = 65535

// wire layout of the runtime-encoded records. Field order matters; the
// decoder reads them positionally.
type rawAxonInfo struct {
	Block        uint64
	Version      uint32
	IP           [16]byte // u128, little-endian
	Port         uint16
	IPType       uint8
	Protocol     uint8
	Placeholder1 uint8
	Placeholder2 uint8
}

type rawPrometheusInfo struct {
	Block   uint64
	Version uint32
	IP      [16]byte
	Port    uint16
	IPType  uint8
}

type rawStakeEntry struct {
	Coldkey [32]byte
	Amount  types.UCompact
}

type rawWeight struct {
	UID   types.UCompact
	Value types.UCompact
}

type rawNeuronInfo struct {
	Hotkey          [32]byte
	Coldkey         [32]byte
	UID             types.UCompact
	Netuid          types.UCompact
	Active          bool
	AxonInfo        rawAxonInfo
	PrometheusInfo  rawPrometheusInfo
	Stake           []rawStakeEntry
	Rank            types.UCompact
	Emission        types.UCompact
	Incentive       types.UCompact
	Consensus       types.UCompact
	Trust           types.UCompact
	ValidatorTrust  types.UCompact
	Dividends       types.UCompact
	LastUpdate      types.UCompact
	ValidatorPermit bool
	Weights         []rawWeight
	Bonds           []rawWeight
	PruningScore    types.UCompact
}

type rawSubnetState struct {
	Netuid          types.UCompact
	Hotkeys         [][32]byte
	Coldkeys        [][32]byte
	Active          []bool
	ValidatorPermit []bool
	PruningScore    []types.UCompact
	LastUpdate      []types.UCompact
	Emission        []types.UCompact
	Dividends       []types.UCompact
	Incentives      []types.UCompact
	Consensus       []types.UCompact
	Trust           []types.UCompact
	Rank            []types.UCompact
	LocalStake      []types.UCompact
	GlobalStake     []types.UCompact
	StakeWeight     []types.UCompact
	EmissionHistory [][]types.UCompact
}

type rawDynamicInfo struct {
	Netuid              types.UCompact
	OwnerHotkey         [32]byte
	OwnerColdkey        [32]byte
	SubnetName          []byte
	Symbol              []byte
	Tempo               types.UCompact
	LastStep            types.UCompact
	BlocksSinceLastStep types.UCompact
	Emission            types.UCompact
	AlphaIn             types.UCompact
	AlphaOut            types.UCompact
	TaoIn               types.UCompact
	TotalLocked         types.UCompact
	OwnerLocked         types.UCompact
}

func compactInt(u types.UCompact) int64 {
	v := big.Int(u)
	return v.Int64()
}

func compactUint(u types.UCompact) uint64 {
	v := big.Int(u)
	return v.Uint64()
}

// u16Normalized maps a 16-bit score field onto [0,1].
func u16Normalized(v int64) float64 {
	return float64(v) / u16Max
}

func encodeAccountID(id [32]byte) string {
	return subkey.SS58Encode(id[:], ss58Format)
}

// ipString renders a little-endian u128 ip field. IPv4 addresses occupy
// the low 32 bits.
func ipString(raw [16]byte, ipType uint8) string {
	be := make(net.IP, 16)
	for i := range raw {
		be[15-i] = raw[i]
	}
	if ipType == 4 {
		return net.IPv4(be[12], be[13], be[14], be[15]).String()
	}
	return be.String()
}

// NeuronInfoFromBytes decodes a chain-returned neuron buffer. The stake
// list becomes a per-delegator map whose sum is the neuron's total stake;
// an empty list sums to zero. Weights and bonds keep their exact integer
// values and order.
func NeuronInfoFromBytes(buf []byte) (NeuronInfo, error) {
	var raw rawNeuronInfo
	if err := scale.NewDecoder(bytes.NewReader(buf)).Decode(&raw); err != nil {
		return NeuronInfo{}, &DecodeError{What: "neuron info", Err: err}
	}

	hotkey := encodeAccountID(raw.Hotkey)
	coldkey := encodeAccountID(raw.Coldkey)

	stakeDict := make(map[string]balance.Balance, len(raw.Stake))
	var totalStake balance.Balance
	for _, entry := range raw.Stake {
		amount := balance.FromRao(compactInt(entry.Amount))
		stakeDict[encodeAccountID(entry.Coldkey)] = amount
		totalStake = totalStake.Add(amount)
	}

	weights := make([][2]int, 0, len(raw.Weights))
	for _, w := range raw.Weights {
		weights = append(weights, [2]int{int(compactInt(w.UID)), int(compactInt(w.Value))})
	}
	bonds := make([][2]int, 0, len(raw.Bonds))
	for _, b := range raw.Bonds {
		bonds = append(bonds, [2]int{int(compactInt(b.UID)), int(compactInt(b.Value))})
	}

	return NeuronInfo{
		Hotkey:          hotkey,
		Coldkey:         coldkey,
		UID:             int(compactInt(raw.UID)),
		Netuid:          int(compactInt(raw.Netuid)),
		Active:          raw.Active,
		Stake:           totalStake,
		StakeDict:       stakeDict,
		TotalStake:      totalStake,
		Rank:            u16Normalized(compactInt(raw.Rank)),
		Emission:        float64(compactInt(raw.Emission)) / balance.RaoPerTao,
		Incentive:       u16Normalized(compactInt(raw.Incentive)),
		Consensus:       u16Normalized(compactInt(raw.Consensus)),
		Trust:           u16Normalized(compactInt(raw.Trust)),
		ValidatorTrust:  u16Normalized(compactInt(raw.ValidatorTrust)),
		Dividends:       u16Normalized(compactInt(raw.Dividends)),
		LastUpdate:      compactUint(raw.LastUpdate),
		ValidatorPermit: raw.ValidatorPermit,
		Weights:         weights,
		Bonds:           bonds,
		PruningScore:    int(compactInt(raw.PruningScore)),
		AxonInfo: AxonInfo{
			Block:        raw.AxonInfo.Block,
			Version:      raw.AxonInfo.Version,
			IP:           ipString(raw.AxonInfo.IP, raw.AxonInfo.IPType),
			Port:         raw.AxonInfo.Port,
			IPType:       raw.AxonInfo.IPType,
			Protocol:     raw.AxonInfo.Protocol,
			Placeholder1: raw.AxonInfo.Placeholder1,
			Placeholder2: raw.AxonInfo.Placeholder2,
			Hotkey:       hotkey,
			Coldkey:      coldkey,
		},
		PrometheusInfo: PrometheusInfo{
			Block:   raw.PrometheusInfo.Block,
			Version: raw.PrometheusInfo.Version,
			IP:      ipString(raw.PrometheusInfo.IP, raw.PrometheusInfo.IPType),
			Port:    raw.PrometheusInfo.Port,
			IPType:  raw.PrometheusInfo.IPType,
		},
	}, nil
}

// SubnetStateFromBytes decodes a subnet state buffer. Every sequence is
// indexed by uid; unequal lengths mean the buffer cannot be trusted and
// decoding fails.
func SubnetStateFromBytes(buf []byte) (SubnetState, error) {
	var raw rawSubnetState
	if err := scale.NewDecoder(bytes.NewReader(buf)).Decode(&raw); err != nil {
		return SubnetState{}, &DecodeError{What: "subnet state", Err: err}
	}

	n := len(raw.Hotkeys)
	for _, l := range []int{
		len(raw.Coldkeys), len(raw.Active), len(raw.ValidatorPermit),
		len(raw.PruningScore), len(raw.LastUpdate), len(raw.Emission),
		len(raw.Dividends), len(raw.Incentives), len(raw.Consensus),
		len(raw.Trust), len(raw.Rank), len(raw.LocalStake),
		len(raw.GlobalStake), len(raw.StakeWeight),
	} {
		if l != n {
			return SubnetState{}, &DecodeError{What: "subnet state: unequal sequence lengths"}
		}
	}

	state := SubnetState{
		Netuid:          int(compactInt(raw.Netuid)),
		Hotkeys:         make([]string, n),
		Coldkeys:        make([]string, n),
		Active:          raw.Active,
		ValidatorPermit: raw.ValidatorPermit,
		PruningScore:    make([]float64, n),
		LastUpdate:      make([]uint64, n),
		Emission:        make([]balance.Balance, n),
		Dividends:       make([]float64, n),
		Incentives:      make([]float64, n),
		Consensus:       make([]float64, n),
		Trust:           make([]float64, n),
		Rank:            make([]float64, n),
		LocalStake:      make([]balance.Balance, n),
		GlobalStake:     make([]balance.Balance, n),
		StakeWeight:     make([]float64, n),
	}
	for i := 0; i < n; i++ {
		state.Hotkeys[i] = encodeAccountID(raw.Hotkeys[i])
		state.Coldkeys[i] = encodeAccountID(raw.Coldkeys[i])
		state.PruningScore[i] = u16Normalized(compactInt(raw.PruningScore[i]))
		state.LastUpdate[i] = compactUint(raw.LastUpdate[i])
		state.Emission[i] = balance.FromRao(compactInt(raw.Emission[i]))
		state.Dividends[i] = u16Normalized(compactInt(raw.Dividends[i]))
		state.Incentives[i] = u16Normalized(compactInt(raw.Incentives[i]))
		state.Consensus[i] = u16Normalized(compactInt(raw.Consensus[i]))
		state.Trust[i] = u16Normalized(compactInt(raw.Trust[i]))
		state.Rank[i] = u16Normalized(compactInt(raw.Rank[i]))
		state.LocalStake[i] = balance.FromRao(compactInt(raw.LocalStake[i]))
		state.GlobalStake[i] = balance.FromRao(compactInt(raw.GlobalStake[i]))
		state.StakeWeight[i] = u16Normalized(compactInt(raw.StakeWeight[i]))
	}

	state.EmissionHistory = make([][]balance.Balance, len(raw.EmissionHistory))
	for i, hist := range raw.EmissionHistory {
		row := make([]balance.Balance, len(hist))
		for j, e := range hist {
			row[j] = balance.FromRao(compactInt(e))
		}
		state.EmissionHistory[i] = row
	}

	return state, nil
}

// DynamicInfoFromBytes decodes a subnet header buffer.
func DynamicInfoFromBytes(buf []byte) (DynamicInfo, error) {
	var raw rawDynamicInfo
	if err := scale.NewDecoder(bytes.NewReader(buf)).Decode(&raw); err != nil {
		return DynamicInfo{}, &DecodeError{What: "dynamic info", Err: err}
	}

	return DynamicInfo{
		Netuid:              int(compactInt(raw.Netuid)),
		OwnerHotkey:         encodeAccountID(raw.OwnerHotkey),
		OwnerColdkey:        encodeAccountID(raw.OwnerColdkey),
		SubnetName:          string(raw.SubnetName),
		Symbol:              string(raw.Symbol),
		Tempo:               int(compactInt(raw.Tempo)),
		LastStep:            compactUint(raw.LastStep),
		BlocksSinceLastStep: compactUint(raw.BlocksSinceLastStep),
		Emission:            balance.FromRao(compactInt(raw.Emission)),
		AlphaIn:             balance.FromRao(compactInt(raw.AlphaIn)),
		AlphaOut:            balance.FromRao(compactInt(raw.AlphaOut)),
		TaoIn:               balance.FromRao(compactInt(raw.TaoIn)),
		TotalLocked:         balance.FromRao(compactInt(raw.TotalLocked)),
		OwnerLocked:         balance.FromRao(compactInt(raw.OwnerLocked)),
	}, nil
}
