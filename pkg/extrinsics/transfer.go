package extrinsics

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vedhavyas/go-subkey"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/subtensor"
)

// TransferParams configures a balance transfer.
type TransferParams struct {
	// Dest is the SS58-encoded destination coldkey.
	Dest   string
	Amount balance.Balance
	// KeepAlive keeps the sender account above the existential deposit.
	KeepAlive           bool
	WaitForInclusion    bool
	WaitForFinalization bool
	Prompt              bool
}

// Transfer moves free balance from the wallet coldkey to another coldkey.
// The destination address is validated locally before any chain call.
func (o *Orchestrator) Transfer(p TransferParams) bool {
	if _, _, err := subkey.SS58Decode(p.Dest); err != nil {
		o.report(fmt.Sprintf("Invalid destination address: %s", p.Dest))
		return false
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

	existential := balance.FromRao(0)
	if p.KeepAlive {
		existential, err = o.reader.GetExistentialDeposit()
		if err != nil {
			o.report(fmt.Sprintf("Failed to fetch existential deposit: %v", err))
			return false
		}
	}

	fee, err := o.reader.GetTransferFee(coldkey, p.Dest, p.Amount)
	if err != nil {
		o.report(fmt.Sprintf("Failed to estimate transfer fee: %v", err))
		return false
	}

	required := p.Amount.Add(fee).Add(existential)
	if oldBalance.Cmp(required) < 0 {
		o.report(fmt.Sprintf("Not enough balance:\n  balance: %s\n  amount: %s\n  for fee: %s", oldBalance, p.Amount, fee))
		return false
	}

	if p.Prompt {
		if !o.confirm(fmt.Sprintf("Do you want to transfer:\n  amount: %s\n  from: %s : %s\n  to: %s\n  for fee: %s?", p.Amount, o.wallet.Name(), coldkey, p.Dest, fee)) {
			return false
		}
	}

	outcome, err := o.writer.SubmitTransfer(p.Dest, p.Amount, p.KeepAlive, subtensor.WaitOpts{
		WaitForInclusion:    p.WaitForInclusion,
		WaitForFinalization: p.WaitForFinalization,
	})
	if err != nil {
		o.report(fmt.Sprintf("Failed to submit transfer: %v", err))
		return false
	}
	if !outcome.Success {
		o.reportSubmitFailure(p.Dest, outcome)
		return false
	}

	if !p.WaitForInclusion && !p.WaitForFinalization {
		o.report("Transfer submitted")
		return true
	}

	o.report("Finalized")
	if outcome.BlockHash != "" {
		o.report(fmt.Sprintf("Block Hash: %s", outcome.BlockHash))
	}

	newBalance, err := o.reader.GetBalance(coldkey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to re-fetch balance after transfer")
		return true
	}
	o.report(fmt.Sprintf("Balance: %s -> %s", oldBalance, newBalance))
	return true
}
