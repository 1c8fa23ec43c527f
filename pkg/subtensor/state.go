package subtensor

import (
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/taocli/pkg/chaindata"
)

// State query helpers. These fetch raw SCALE buffers through the RPC
// passthrough and hand them to the chaindata decoder. A missing entity
// comes back as the null sentinel; a buffer the decoder cannot understand
// propagates as a DecodeError.

// GetSubnetState fetches and decodes the per-uid state of a subnet.
func (c *Client) GetSubnetState(netuid int) (chaindata.SubnetState, error) {
	buf, err := c.RPCRequest("subnetInfo_getSubnetState", []any{netuid, nil})
	if err != nil {
		return chaindata.SubnetState{}, err
	}
	if len(buf) == 0 {
		log.Debug().Int("netuid", netuid).Msg("subnet state empty, returning null sentinel")
		return chaindata.NullSubnetState(), nil
	}
	return chaindata.SubnetStateFromBytes(buf)
}

// GetDynamicInfo fetches and decodes the subnet header record.
func (c *Client) GetDynamicInfo(netuid int) (chaindata.DynamicInfo, error) {
	buf, err := c.RPCRequest("subnetInfo_getDynamicInfo", []any{netuid, nil})
	if err != nil {
		return chaindata.DynamicInfo{}, err
	}
	if len(buf) == 0 {
		log.Debug().Int("netuid", netuid).Msg("dynamic info empty, returning null sentinel")
		return chaindata.NullDynamicInfo(), nil
	}
	return chaindata.DynamicInfoFromBytes(buf)
}

// GetNeuron fetches and decodes a single neuron by uid.
func (c *Client) GetNeuron(netuid, uid int) (chaindata.NeuronInfo, error) {
	buf, err := c.RPCRequest("neuronInfo_getNeuron", []any{netuid, uid, nil})
	if err != nil {
		return chaindata.NeuronInfo{}, err
	}
	if len(buf) == 0 {
		log.Debug().Int("netuid", netuid).Int("uid", uid).Msg("neuron empty, returning null sentinel")
		return chaindata.NullNeuronInfo(), nil
	}
	return chaindata.NeuronInfoFromBytes(buf)
}
