package extrinsics

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/subtensor"
)

// StakeParams configures a single add-stake call.
type StakeParams struct {
	// Hotkey to stake to; defaults to the wallet's own hotkey.
	Hotkey string
	// Amount to stake; nil means stake the whole free balance minus the
	// existential deposit.
	Amount              *balance.Balance
	WaitForInclusion    bool
	WaitForFinalization bool
	Prompt              bool
}

// Stake adds stake from the wallet coldkey to a hotkey. Returns true when
// the extrinsic was submitted (and, if requested, included or finalized).
func (o *Orchestrator) Stake(p StakeParams) bool {
	if err := o.wallet.UnlockColdkey(); err != nil {
		o.report(fmt.Sprintf("Failed to unlock coldkey: %v", err))
		return false
	}

	hotkey := p.Hotkey
	if hotkey == "" {
		hotkey = o.wallet.HotkeyAddress()
	}
	coldkey := o.wallet.ColdkeyAddress()

	_, registered, err := o.reader.GetHotkeyOwner(hotkey)
	if err != nil {
		o.report(fmt.Sprintf("Failed to fetch hotkey owner: %v", err))
		return false
	}
	if !registered {
		o.report(fmt.Sprintf("Hotkey: %s is not registered", hotkey))
		return false
	}

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

	var staking balance.Balance
	if p.Amount != nil {
		staking = *p.Amount
	} else {
		existential, err := o.reader.GetExistentialDeposit()
		if err != nil {
			o.report(fmt.Sprintf("Failed to fetch existential deposit: %v", err))
			return false
		}
		staking = oldBalance.Sub(existential)
		if staking.Rao < 0 {
			staking = balance.FromRao(0)
		}
	}

	if staking.Cmp(oldBalance) > 0 {
		o.report(fmt.Sprintf("Not enough balance: %s to stake: %s", oldBalance, staking))
		return false
	}

	if p.Prompt {
		if !o.confirm(fmt.Sprintf("Do you want to stake:\n  amount: %s\n  to hotkey: %s?", staking, hotkey)) {
			return false
		}
	}

	outcome, err := o.writer.SubmitAddStake(hotkey, staking, subtensor.WaitOpts{
		WaitForInclusion:    p.WaitForInclusion,
		WaitForFinalization: p.WaitForFinalization,
	})
	if err != nil {
		o.report(fmt.Sprintf("Failed to submit stake: %v", err))
		return false
	}
	if !outcome.Success {
		o.reportSubmitFailure(hotkey, outcome)
		return false
	}

	if !p.WaitForInclusion && !p.WaitForFinalization {
		o.report("Stake submitted")
		return true
	}

	o.report("Finalized")

	newBalance, err := o.reader.GetBalance(coldkey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to re-fetch balance after stake")
		return true
	}
	newStake, err := o.reader.GetStakeForColdkeyAndHotkey(coldkey, hotkey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to re-fetch stake after stake")
		return true
	}
	o.report(fmt.Sprintf("Balance: %s -> %s", oldBalance, newBalance))
	o.report(fmt.Sprintf("Stake: %s -> %s", oldStake, newStake))
	return true
}
