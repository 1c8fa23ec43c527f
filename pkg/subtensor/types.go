package subtensor

// Response is the sidecar's generic envelope. Error is non-nil when the
// sidecar itself rejected the request; write payloads additionally carry
// their own outcome in Data.
type Response[T any] struct {
	StatusCode int            `json:"statusCode"`
	Success    bool           `json:"success"`
	Data       T              `json:"data"`
	Error      map[string]any `json:"error"`
}

type (
	AmountResponse        = Response[Amount]
	HotkeyOwnerResponse   = Response[HotkeyOwner]
	LatestBlockResponse   = Response[LatestBlock]
	TxRateLimitResponse   = Response[TxRateLimit]
	SubmitOutcomeResponse = Response[SubmitOutcome]
	RPCResultResponse     = Response[RPCResult]
)

// Amount carries a rao-denominated token amount.
type Amount struct {
	Rao int64 `json:"rao"`
}

// HotkeyOwner is the owning coldkey of a hotkey; Registered is false when
// the hotkey is unknown to the chain.
type HotkeyOwner struct {
	Owner      string `json:"owner"`
	Registered bool   `json:"registered"`
}

// LatestBlock holds the chain head details.
type LatestBlock struct {
	ParentHash     string `json:"parentHash"`
	BlockNumber    int    `json:"blockNumber"`
	StateRoot      string `json:"stateRoot"`
	ExtrinsicsRoot string `json:"extrinsicsRoot"`
}

// TxRateLimit is the minimum block spacing the chain enforces between
// transactions from one account.
type TxRateLimit struct {
	Blocks int `json:"blocks"`
}

// Failure kinds reported by the sidecar on rejected submissions. The
// orchestrators match on these, never on message text.
const (
	KindNotRegistered       = "notRegistered"
	KindStakeRejected       = "stakeRejected"
	KindInsufficientBalance = "insufficientBalance"
	KindInvalidAddress      = "invalidAddress"
)

// SubmitOutcome is the result of a write call. When the caller did not
// wait for inclusion or finalization, Success merely means the extrinsic
// was accepted into the pool and BlockHash is empty.
type SubmitOutcome struct {
	Success   bool   `json:"success"`
	Kind      string `json:"kind,omitempty"`
	Detail    string `json:"detail,omitempty"`
	BlockHash string `json:"blockHash,omitempty"`
}

// TransferFeeParams asks for the fee estimate of a balance transfer.
type TransferFeeParams struct {
	From      string `json:"from"`
	Dest      string `json:"dest"`
	AmountRao int64  `json:"amountRao"`
}

// WaitOpts selects how long a write call blocks: not at all, until the
// extrinsic enters a block, or until it is finalized. Timeouts are owned
// by the sidecar, not this client.
type WaitOpts struct {
	WaitForInclusion    bool `json:"waitForInclusion"`
	WaitForFinalization bool `json:"waitForFinalization"`
}

// AddStakeParams submits a stake extrinsic.
type AddStakeParams struct {
	Hotkey    string `json:"hotkey"`
	AmountRao int64  `json:"amountRao"`
	WaitOpts
}

// RemoveStakeParams submits an unstake extrinsic.
type RemoveStakeParams struct {
	Hotkey    string `json:"hotkey"`
	AmountRao int64  `json:"amountRao"`
	WaitOpts
}

// TransferParams submits a balance transfer.
type TransferParams struct {
	Dest      string `json:"dest"`
	AmountRao int64  `json:"amountRao"`
	KeepAlive bool   `json:"keepAlive"`
	WaitOpts
}

// ExtrinsicParams submits an arbitrary signed call.
type ExtrinsicParams struct {
	CallModule   string         `json:"callModule"`
	CallFunction string         `json:"callFunction"`
	CallParams   map[string]any `json:"callParams"`
	WaitOpts
}

// RPCRequestParams is the raw JSON-RPC passthrough payload.
type RPCRequestParams struct {
	Method string `json:"method"`
	Params []any  `json:"params"`
}

// RPCResult carries the hex-encoded SCALE bytes of a raw RPC response.
type RPCResult struct {
	Result string `json:"result"`
}
