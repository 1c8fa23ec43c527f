// Package extrinsics implements the stake, unstake and transfer
// workflows. Every operation follows the same shape: validate against
// freshly fetched chain state, optionally confirm with the user, submit
// the signed call, optionally wait for inclusion or finalization, then
// re-query and report the resulting deltas.
//
// Calls are synchronous and hold no state between invocations. There is
// no cancellation once a call has been submitted: a timeout while waiting
// means the outcome was not confirmed, not that the transaction was
// dropped — it may still land on-chain later.
package extrinsics

import (
	"time"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/subtensor"
)

// BlockTime is the fixed real-time duration of one chain block, used for
// the inter-submission rate-limit pause.
const BlockTime = 12 * time.Second

// FailureKind tags the expected, named failure modes. Callers match on
// the kind, never on message text.
type FailureKind string

const (
	FailureNone                FailureKind = ""
	FailureNotRegistered       FailureKind = "not_registered"
	FailureStakeRejected       FailureKind = "stake_rejected"
	FailureInsufficientBalance FailureKind = "insufficient_balance"
	FailureInvalidAddress      FailureKind = "invalid_address"
	FailureUserAborted         FailureKind = "user_aborted"
)

// failureKindOf maps a sidecar outcome kind onto the local taxonomy.
func failureKindOf(kind string) FailureKind {
	switch kind {
	case subtensor.KindNotRegistered:
		return FailureNotRegistered
	case subtensor.KindStakeRejected:
		return FailureStakeRejected
	case subtensor.KindInsufficientBalance:
		return FailureInsufficientBalance
	case subtensor.KindInvalidAddress:
		return FailureInvalidAddress
	default:
		return FailureStakeRejected
	}
}

// ChainReader is the read-only chain surface the orchestrators depend on.
type ChainReader interface {
	GetBalance(ss58 string) (balance.Balance, error)
	GetStakeForColdkeyAndHotkey(coldkey, hotkey string) (balance.Balance, error)
	GetMinimumRequiredStake() (balance.Balance, error)
	GetHotkeyOwner(hotkey string) (string, bool, error)
	GetExistentialDeposit() (balance.Balance, error)
	GetTransferFee(from, dest string, amount balance.Balance) (balance.Balance, error)
	GetCurrentBlock() (int, error)
	GetTxRateLimit() (int, error)
}

// ChainWriter is the submission surface.
type ChainWriter interface {
	SubmitAddStake(hotkey string, amount balance.Balance, wait subtensor.WaitOpts) (subtensor.SubmitOutcome, error)
	SubmitRemoveStake(hotkey string, amount balance.Balance, wait subtensor.WaitOpts) (subtensor.SubmitOutcome, error)
	SubmitTransfer(dest string, amount balance.Balance, keepAlive bool, wait subtensor.WaitOpts) (subtensor.SubmitOutcome, error)
}

// Wallet is the keystore surface. UnlockColdkey must succeed before any
// submission is attempted.
type Wallet interface {
	Name() string
	HotkeyName() string
	ColdkeyAddress() string
	HotkeyAddress() string
	UnlockColdkey() error
}

// Prompter blocks on a yes/no confirmation.
type Prompter interface {
	Confirm(question string) bool
}

// Reporter is the injected output sink. Orchestrators report progress and
// failure detail through it and stay agnostic of how it is rendered.
type Reporter interface {
	Report(event string)
}

// Orchestrator runs the extrinsic workflows against injected
// collaborators.
type Orchestrator struct {
	reader   ChainReader
	writer   ChainWriter
	wallet   Wallet
	prompter Prompter
	reporter Reporter

	// sleep is swapped out in tests to observe the rate-limit pause.
	sleep func(time.Duration)
}

// New builds an orchestrator. prompter may be nil when no flow will ask
// for confirmation; reporter may be nil to discard events.
func New(reader ChainReader, writer ChainWriter, w Wallet, prompter Prompter, reporter Reporter) *Orchestrator {
	if reporter == nil {
		reporter = discardReporter{}
	}
	return &Orchestrator{
		reader:   reader,
		writer:   writer,
		wallet:   w,
		prompter: prompter,
		reporter: reporter,
		sleep:    time.Sleep,
	}
}

type discardReporter struct{}

func (discardReporter) Report(string) {}

func (o *Orchestrator) report(event string) {
	o.reporter.Report(event)
}

func (o *Orchestrator) confirm(question string) bool {
	if o.prompter == nil {
		return false
	}
	return o.prompter.Confirm(question)
}
