package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/vedhavyas/go-subkey"
)

// SignWithHotkey signs message with the wallet hotkey and returns the
// signature as a 0x-prefixed hex string.
func (k *Keystore) SignWithHotkey(message string) (string, error) {
	return sign(k.hotkey, message)
}

// SignWithColdkey signs message with the coldkey. UnlockColdkey must have
// been called first.
func (k *Keystore) SignWithColdkey(message string) (string, error) {
	return sign(k.coldkey, message)
}

func sign(keypair *sr25519.Keypair, message string) (string, error) {
	if keypair == nil {
		return "", fmt.Errorf("keypair not loaded")
	}
	signature, err := keypair.Sign([]byte(message))
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	return "0x" + hex.EncodeToString(signature), nil
}

// VerifySignature checks a 0x-prefixed hex sr25519 signature over message
// against the account behind an SS58 address.
func VerifySignature(message, signature, ss58Address string) (bool, error) {
	if !strings.HasPrefix(signature, "0x") {
		return false, fmt.Errorf("signature does not start with '0x'")
	}
	sigBytes, err := hex.DecodeString(signature[2:])
	if err != nil {
		return false, fmt.Errorf("failed to decode signature hex: %w", err)
	}
	if len(sigBytes) != 64 {
		return false, fmt.Errorf("invalid signature length: expected 64 bytes, got %d", len(sigBytes))
	}

	_, pubKeyBytes, err := subkey.SS58Decode(ss58Address)
	if err != nil {
		return false, fmt.Errorf("failed to decode SS58 address: %w", err)
	}
	publicKey, err := sr25519.NewPublicKey(pubKeyBytes)
	if err != nil {
		return false, fmt.Errorf("failed to create public key: %w", err)
	}
	return publicKey.Verify([]byte(message), sigBytes)
}
