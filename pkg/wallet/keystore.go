// Package wallet loads coldkey/hotkey material from the on-disk wallet
// layout and exposes SS58 addresses. Key custody stays here; callers only
// see addresses and the unlock operation.
package wallet

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ChainSafe/gossamer/lib/crypto/sr25519"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/vedhavyas/go-subkey"

	"github.com/tensorplex-labs/taocli/internal/config"
)

// SubstrateNetworkID is the SS58 network identifier used for addresses.
const SubstrateNetworkID = 42

// Keystore holds one wallet: a coldkey (long-term custody, loaded lazily
// on unlock) and a hotkey (operational key, loaded up front).
type Keystore struct {
	name       string
	hotkeyName string
	dir        string

	coldkeyAddr string
	coldkey     *sr25519.Keypair
	hotkey      *sr25519.Keypair
}

func expandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("failed to get current user: %w", err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}
	return path, nil
}

func loadMnemonic(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to read keypair file")
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	var result map[string]interface{}
	if err = sonic.Unmarshal(data, &result); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to parse keypair JSON")
		return "", fmt.Errorf("failed to parse JSON: %w", err)
	}

	seed, ok := result["secretPhrase"]
	if !ok {
		return "", fmt.Errorf("secretPhrase not found in JSON")
	}
	seedPhrase, ok := seed.(string)
	if !ok {
		return "", fmt.Errorf("secretPhrase is not a string")
	}
	return seedPhrase, nil
}

func loadColdkeypubAddress(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read coldkeypub file: %w", err)
	}
	var result map[string]interface{}
	if err = sonic.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("failed to parse coldkeypub JSON: %w", err)
	}
	addr, ok := result["ss58Address"].(string)
	if !ok || addr == "" {
		return "", fmt.Errorf("ss58Address not found in coldkeypub JSON")
	}
	return addr, nil
}

// Load opens the wallet named in cfg. The hotkey seed and the coldkey
// public address are read immediately; the coldkey secret stays on disk
// until UnlockColdkey is called.
func Load(cfg *config.WalletEnvConfig) (*Keystore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	dir, err := expandHome(cfg.WalletDir)
	if err != nil {
		return nil, err
	}
	walletRoot := filepath.Join(dir, "wallets", cfg.WalletName)

	hotkeyPath := filepath.Join(walletRoot, "hotkeys", cfg.WalletHotkey)
	log.Debug().Str("path", hotkeyPath).Msg("loading hotkey")
	mnemonic, err := loadMnemonic(hotkeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotkey seed phrase: %w", err)
	}
	hotkey, err := sr25519.NewKeypairFromMnenomic(mnemonic, "")
	if err != nil {
		log.Error().Err(err).Str("path", hotkeyPath).Msg("failed to create hotkey keypair")
		return nil, fmt.Errorf("failed to create hotkey keypair: %w", err)
	}

	coldkeyAddr, err := loadColdkeypubAddress(filepath.Join(walletRoot, "coldkeypub.txt"))
	if err != nil {
		return nil, err
	}

	return &Keystore{
		name:        cfg.WalletName,
		hotkeyName:  cfg.WalletHotkey,
		dir:         walletRoot,
		coldkeyAddr: coldkeyAddr,
		hotkey:      hotkey,
	}, nil
}

// Name returns the wallet name.
func (k *Keystore) Name() string { return k.name }

// ColdkeyAddress returns the coldkey's SS58 address. Available without
// unlocking.
func (k *Keystore) ColdkeyAddress() string { return k.coldkeyAddr }

// HotkeyAddress returns the hotkey's SS58 address.
func (k *Keystore) HotkeyAddress() string {
	return subkey.SS58Encode(k.hotkey.Public().Encode(), SubstrateNetworkID)
}

// HotkeyName returns the hotkey file name.
func (k *Keystore) HotkeyName() string { return k.hotkeyName }

// UnlockColdkey loads the coldkey secret. It is idempotent and must
// succeed before any extrinsic is signed.
func (k *Keystore) UnlockColdkey() error {
	if k.coldkey != nil {
		return nil
	}

	path := filepath.Join(k.dir, "coldkey")
	mnemonic, err := loadMnemonic(path)
	if err != nil {
		return fmt.Errorf("failed to load coldkey seed phrase: %w", err)
	}
	coldkey, err := sr25519.NewKeypairFromMnenomic(mnemonic, "")
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to create coldkey keypair")
		return fmt.Errorf("failed to create coldkey keypair: %w", err)
	}

	k.coldkey = coldkey
	log.Debug().Str("wallet", k.name).Msg("coldkey unlocked")
	return nil
}

// Coldkey returns the unlocked coldkey keypair, or nil before unlock.
func (k *Keystore) Coldkey() *sr25519.Keypair { return k.coldkey }
