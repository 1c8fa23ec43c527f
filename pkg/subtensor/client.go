// Package subtensor provides the chain RPC client used by the SDK. All
// chain interaction goes through a local sidecar that holds the substrate
// connection; this package wraps its HTTP API in typed calls.
//
// Write calls block according to WaitOpts. Once a submission has been
// accepted there is no rollback: a timeout while waiting only means the
// outcome was not confirmed in time, the transaction may still land
// on-chain later. Callers must treat "not confirmed" and "rejected" as
// distinct conditions.
package subtensor

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/taocli/internal/config"
	"github.com/tensorplex-labs/taocli/pkg/balance"
)

// Client is a typed wrapper for the sidecar HTTP API.
type Client struct {
	client  *resty.Client
	raw     *rawClient
	Network string
	BaseURL string
}

// NewClient creates a new sidecar client from environment configuration.
func NewClient(cfg *config.SubtensorEnvConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	url := fmt.Sprintf("http://%s:%s", cfg.SubtensorHost, cfg.SubtensorPort)

	client := resty.New().
		SetBaseURL(url).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		// finalization waits span multiple 12s blocks
		SetTimeout(3 * time.Minute)

	raw, err := newRawClient(url)
	if err != nil {
		return nil, err
	}

	return &Client{
		client:  client,
		raw:     raw,
		Network: cfg.SubtensorNetwork,
		BaseURL: url,
	}, nil
}

func postJSON[T any](client *resty.Client, path string, body any) (Response[T], error) {
	var result Response[T]
	resp, err := client.R().
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("post request failed")
		return Response[T]{}, fmt.Errorf("post %s: %w", path, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("body", resp.String()).Str("path", path).Msg("post non-2xx")
		return Response[T]{}, fmt.Errorf("request returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != nil {
		log.Error().Interface("error", result.Error).Str("path", path).Msg("response contains error")
		return Response[T]{}, fmt.Errorf("response error: %v", result.Error)
	}
	return result, nil
}

func getJSON[T any](client *resty.Client, path string) (Response[T], error) {
	var result Response[T]
	resp, err := client.R().
		SetResult(&result).
		Get(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("get request failed")
		return Response[T]{}, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("body", resp.String()).Str("path", path).Msg("get non-2xx")
		return Response[T]{}, fmt.Errorf("request returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != nil {
		log.Error().Interface("error", result.Error).Str("path", path).Msg("response contains error")
		return Response[T]{}, fmt.Errorf("response error: %v", result.Error)
	}
	return result, nil
}

// GetBalance fetches the free balance of an address.
func (c *Client) GetBalance(ss58 string) (balance.Balance, error) {
	res, err := getJSON[Amount](c.client, fmt.Sprintf("/chain/balance/%s", ss58))
	if err != nil {
		return balance.Balance{}, err
	}
	return balance.FromRao(res.Data.Rao), nil
}

// GetStakeForColdkeyAndHotkey fetches the stake the coldkey holds on the
// hotkey. An unknown pair reports zero.
func (c *Client) GetStakeForColdkeyAndHotkey(coldkey, hotkey string) (balance.Balance, error) {
	res, err := getJSON[Amount](c.client, fmt.Sprintf("/chain/stake/%s/%s", coldkey, hotkey))
	if err != nil {
		return balance.Balance{}, err
	}
	return balance.FromRao(res.Data.Rao), nil
}

// GetMinimumRequiredStake fetches the chain-defined nomination floor.
func (c *Client) GetMinimumRequiredStake() (balance.Balance, error) {
	res, err := getJSON[Amount](c.client, "/chain/minimum-required-stake")
	if err != nil {
		return balance.Balance{}, err
	}
	return balance.FromRao(res.Data.Rao), nil
}

// GetHotkeyOwner returns the coldkey owning the hotkey, and whether the
// hotkey is registered at all.
func (c *Client) GetHotkeyOwner(hotkey string) (string, bool, error) {
	res, err := getJSON[HotkeyOwner](c.client, fmt.Sprintf("/chain/hotkey-owner/%s", hotkey))
	if err != nil {
		return "", false, err
	}
	return res.Data.Owner, res.Data.Registered, nil
}

// GetExistentialDeposit fetches the minimum balance an account needs to
// stay alive.
func (c *Client) GetExistentialDeposit() (balance.Balance, error) {
	res, err := getJSON[Amount](c.client, "/chain/existential-deposit")
	if err != nil {
		return balance.Balance{}, err
	}
	return balance.FromRao(res.Data.Rao), nil
}

// GetTransferFee estimates the fee of a balance transfer.
func (c *Client) GetTransferFee(from, dest string, amount balance.Balance) (balance.Balance, error) {
	res, err := postJSON[Amount](c.client, "/chain/transfer-fee", TransferFeeParams{
		From:      from,
		Dest:      dest,
		AmountRao: amount.Rao,
	})
	if err != nil {
		return balance.Balance{}, err
	}
	return balance.FromRao(res.Data.Rao), nil
}

// GetCurrentBlock fetches the current block number.
func (c *Client) GetCurrentBlock() (int, error) {
	res, err := getJSON[LatestBlock](c.client, "/chain/latest-block")
	if err != nil {
		return 0, err
	}
	return res.Data.BlockNumber, nil
}

// GetTxRateLimit fetches the minimum block spacing between transactions
// from the same account.
func (c *Client) GetTxRateLimit() (int, error) {
	res, err := getJSON[TxRateLimit](c.client, "/chain/tx-rate-limit")
	if err != nil {
		return 0, err
	}
	return res.Data.Blocks, nil
}

// GetSubnetBurnCost fetches the current cost of registering a subnet.
func (c *Client) GetSubnetBurnCost() (balance.Balance, error) {
	res, err := getJSON[Amount](c.client, "/chain/subnet-burn-cost")
	if err != nil {
		return balance.Balance{}, err
	}
	return balance.FromRao(res.Data.Rao), nil
}

// SubmitAddStake submits a signed stake call.
func (c *Client) SubmitAddStake(hotkey string, amount balance.Balance, wait WaitOpts) (SubmitOutcome, error) {
	res, err := postJSON[SubmitOutcome](c.client, "/chain/add-stake", AddStakeParams{
		Hotkey:    hotkey,
		AmountRao: amount.Rao,
		WaitOpts:  wait,
	})
	if err != nil {
		return SubmitOutcome{}, err
	}
	return res.Data, nil
}

// SubmitRemoveStake submits a signed unstake call.
func (c *Client) SubmitRemoveStake(hotkey string, amount balance.Balance, wait WaitOpts) (SubmitOutcome, error) {
	res, err := postJSON[SubmitOutcome](c.client, "/chain/remove-stake", RemoveStakeParams{
		Hotkey:    hotkey,
		AmountRao: amount.Rao,
		WaitOpts:  wait,
	})
	if err != nil {
		return SubmitOutcome{}, err
	}
	return res.Data, nil
}

// SubmitTransfer submits a signed balance transfer.
func (c *Client) SubmitTransfer(dest string, amount balance.Balance, keepAlive bool, wait WaitOpts) (SubmitOutcome, error) {
	res, err := postJSON[SubmitOutcome](c.client, "/chain/transfer", TransferParams{
		Dest:      dest,
		AmountRao: amount.Rao,
		KeepAlive: keepAlive,
		WaitOpts:  wait,
	})
	if err != nil {
		return SubmitOutcome{}, err
	}
	return res.Data, nil
}

// SubmitExtrinsic submits an arbitrary signed call.
func (c *Client) SubmitExtrinsic(params ExtrinsicParams) (SubmitOutcome, error) {
	res, err := postJSON[SubmitOutcome](c.client, "/substrate/submit-extrinsic", params)
	if err != nil {
		return SubmitOutcome{}, err
	}
	return res.Data, nil
}

// RPCRequest performs a raw JSON-RPC call against the chain node and
// returns the decoded SCALE bytes of the result.
func (c *Client) RPCRequest(method string, params []any) ([]byte, error) {
	return c.raw.request(method, params)
}
