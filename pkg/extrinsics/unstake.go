package extrinsics

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/subtensor"
)

// UnstakeParams configures a single unstake call.
type UnstakeParams struct {
	// Hotkey to unstake from; defaults to the wallet's own hotkey.
	Hotkey string
	// Amount to withdraw; nil means unstake everything.
	Amount              *balance.Balance
	WaitForInclusion    bool
	WaitForFinalization bool
	Prompt              bool
}

// checkThresholdAmount reports whether a nomination may be left holding
// stakeBalance: either zero, or at least the chain-defined minimum.
func (o *Orchestrator) checkThresholdAmount(stakeBalance balance.Balance) (bool, error) {
	minRequired, err := o.reader.GetMinimumRequiredStake()
	if err != nil {
		return false, err
	}
	if stakeBalance.Rao > 0 && stakeBalance.Cmp(minRequired) < 0 {
		o.report(fmt.Sprintf("Remaining stake balance of %s less than minimum of %s", stakeBalance, minRequired))
		return false, nil
	}
	return true, nil
}

// Unstake removes stake from a hotkey back to the wallet coldkey. It
// returns true when the extrinsic was submitted (and, if requested,
// included or finalized); every named failure is reported and converted
// to false.
func (o *Orchestrator) Unstake(p UnstakeParams) bool {
	if err := o.wallet.UnlockColdkey(); err != nil {
		o.report(fmt.Sprintf("Failed to unlock coldkey: %v", err))
		return false
	}

	hotkey := p.Hotkey
	if hotkey == "" {
		hotkey = o.wallet.HotkeyAddress()
	}
	coldkey := o.wallet.ColdkeyAddress()

	oldBalance, err := o.reader.GetBalance(coldkey)
	if err != nil {
		o.report(fmt.Sprintf("Failed to fetch balance: %v", err))
		return false
	}
	oldStake, err := o.reader.GetStakeForColdkeyAndHotkey(coldkey, hotkey)
	if err != nil {
		o.report(fmt.Sprintf("Failed to fetch stake: %v", err))
		return false
	}
	owner, _, err := o.reader.GetHotkeyOwner(hotkey)
	if err != nil {
		o.report(fmt.Sprintf("Failed to fetch hotkey owner: %v", err))
		return false
	}
	ownHotkey := coldkey == owner

	unstaking := oldStake
	if p.Amount != nil {
		unstaking = *p.Amount
	}

	if unstaking.Cmp(oldStake) > 0 {
		o.report(fmt.Sprintf("Not enough stake: %s to unstake: %s from hotkey: %s", oldStake, unstaking, hotkey))
		return false
	}

	// Nominations must not be left below the minimum threshold; withdraw
	// everything instead of leaving dust.
	if !ownHotkey {
		ok, err := o.checkThresholdAmount(oldStake.Sub(unstaking))
		if err != nil {
			o.report(fmt.Sprintf("Failed to fetch minimum required stake: %v", err))
			return false
		}
		if !ok {
			o.report("This action will unstake the entire staked balance")
			unstaking = oldStake
		}
	}

	if p.Prompt {
		if !o.confirm(fmt.Sprintf("Do you want to unstake:\n  amount: %s\n  hotkey: %s?", unstaking, hotkey)) {
			return false
		}
	}

	outcome, err := o.writer.SubmitRemoveStake(hotkey, unstaking, subtensor.WaitOpts{
		WaitForInclusion:    p.WaitForInclusion,
		WaitForFinalization: p.WaitForFinalization,
	})
	if err != nil {
		o.report(fmt.Sprintf("Failed to submit unstake: %v", err))
		return false
	}
	if !outcome.Success {
		o.reportSubmitFailure(hotkey, outcome)
		return false
	}

	if !p.WaitForInclusion && !p.WaitForFinalization {
		o.report("Unstake submitted")
		return true
	}

	o.report("Finalized")

	newBalance, err := o.reader.GetBalance(coldkey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to re-fetch balance after unstake")
		return true
	}
	newStake, err := o.reader.GetStakeForColdkeyAndHotkey(coldkey, hotkey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to re-fetch stake after unstake")
		return true
	}
	o.report(fmt.Sprintf("Balance: %s -> %s", oldBalance, newBalance))
	o.report(fmt.Sprintf("Stake: %s -> %s", oldStake, newStake))
	return true
}

func (o *Orchestrator) reportSubmitFailure(target string, outcome subtensor.SubmitOutcome) {
	switch failureKindOf(outcome.Kind) {
	case FailureNotRegistered:
		o.report(fmt.Sprintf("Hotkey: %s is not registered", target))
	case FailureInsufficientBalance:
		o.report(fmt.Sprintf("Insufficient balance: %s", outcome.Detail))
	case FailureInvalidAddress:
		o.report(fmt.Sprintf("Invalid destination address: %s", target))
	default:
		o.report(fmt.Sprintf("Stake Error: %s", outcome.Detail))
	}
}

// UnstakeMultiple removes stake from several hotkeys in one call. Targets
// are processed in input order; a failure on one target skips it and the
// batch continues. Between successive submissions (except after the last)
// the call pauses for the chain's transaction rate limit. Returns true
// when at least one target succeeded.
func (o *Orchestrator) UnstakeMultiple(hotkeys []string, amounts []*balance.Balance, wait subtensor.WaitOpts, prompt bool) bool {
	if len(hotkeys) == 0 {
		return true
	}
	if amounts != nil && len(amounts) != len(hotkeys) {
		o.report("amounts must match hotkeys in length")
		return false
	}
	if amounts == nil {
		amounts = make([]*balance.Balance, len(hotkeys))
	} else {
		total := int64(0)
		for _, a := range amounts {
			if a != nil {
				total += a.Rao
			}
		}
		if total == 0 {
			// unstaking zero is a no-op, not a failure
			return true
		}
	}

	if err := o.wallet.UnlockColdkey(); err != nil {
		o.report(fmt.Sprintf("Failed to unlock coldkey: %v", err))
		return false
	}
	coldkey := o.wallet.ColdkeyAddress()

	oldBalance, err := o.reader.GetBalance(coldkey)
	if err != nil {
		o.report(fmt.Sprintf("Failed to fetch balance: %v", err))
		return false
	}

	oldStakes := make([]balance.Balance, len(hotkeys))
	ownHotkeys := make([]bool, len(hotkeys))
	for i, hotkey := range hotkeys {
		oldStake, err := o.reader.GetStakeForColdkeyAndHotkey(coldkey, hotkey)
		if err != nil {
			o.report(fmt.Sprintf("Failed to fetch stake for %s: %v", hotkey, err))
			return false
		}
		owner, _, err := o.reader.GetHotkeyOwner(hotkey)
		if err != nil {
			o.report(fmt.Sprintf("Failed to fetch owner for %s: %v", hotkey, err))
			return false
		}
		oldStakes[i] = oldStake
		ownHotkeys[i] = coldkey == owner
	}

	outcomes := make([]bool, len(hotkeys))
	for idx, hotkey := range hotkeys {
		outcomes[idx] = o.unstakeTarget(hotkey, amounts[idx], oldStakes[idx], ownHotkeys[idx], wait, prompt)

		if outcomes[idx] && idx < len(hotkeys)-1 {
			rateLimitBlocks, err := o.reader.GetTxRateLimit()
			if err != nil {
				log.Warn().Err(err).Msg("failed to fetch tx rate limit, continuing without pause")
				continue
			}
			if rateLimitBlocks > 0 {
				o.report(fmt.Sprintf("Waiting for tx rate limit: %d blocks", rateLimitBlocks))
				o.sleep(time.Duration(rateLimitBlocks) * BlockTime)
			}
		}
	}

	anySucceeded := false
	for _, ok := range outcomes {
		anySucceeded = anySucceeded || ok
	}
	if anySucceeded {
		newBalance, err := o.reader.GetBalance(coldkey)
		if err == nil {
			o.report(fmt.Sprintf("Balance: %s -> %s", oldBalance, newBalance))
		}
		return true
	}
	return false
}

// unstakeTarget runs validation, prompt, submission and reporting for one
// batch target.
func (o *Orchestrator) unstakeTarget(hotkey string, amount *balance.Balance, oldStake balance.Balance, ownHotkey bool, wait subtensor.WaitOpts, prompt bool) bool {
	unstaking := oldStake
	if amount != nil {
		unstaking = *amount
	}

	if unstaking.Cmp(oldStake) > 0 {
		o.report(fmt.Sprintf("Not enough stake: %s to unstake: %s from hotkey: %s", oldStake, unstaking, hotkey))
		return false
	}

	if !ownHotkey {
		ok, err := o.checkThresholdAmount(oldStake.Sub(unstaking))
		if err != nil {
			o.report(fmt.Sprintf("Failed to fetch minimum required stake: %v", err))
			return false
		}
		if !ok {
			o.report("This action will unstake the entire staked balance")
			unstaking = oldStake
		}
	}

	if prompt {
		if !o.confirm(fmt.Sprintf("Do you want to unstake:\n  amount: %s\n  hotkey: %s?", unstaking, hotkey)) {
			return false
		}
	}

	outcome, err := o.writer.SubmitRemoveStake(hotkey, unstaking, wait)
	if err != nil {
		o.report(fmt.Sprintf("Failed to submit unstake for %s: %v", hotkey, err))
		return false
	}
	if !outcome.Success {
		o.reportSubmitFailure(hotkey, outcome)
		return false
	}

	if !wait.WaitForInclusion && !wait.WaitForFinalization {
		return true
	}

	o.report("Finalized")
	newStake, err := o.reader.GetStakeForColdkeyAndHotkey(o.wallet.ColdkeyAddress(), hotkey)
	if err != nil {
		log.Warn().Err(err).Str("hotkey", hotkey).Msg("failed to re-fetch stake after unstake")
		return true
	}
	o.report(fmt.Sprintf("Stake (%s): %s -> %s", hotkey, oldStake, newStake))
	return true
}
