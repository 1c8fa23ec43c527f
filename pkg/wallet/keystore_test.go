package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vedhavyas/go-subkey"

	"github.com/tensorplex-labs/taocli/internal/config"
)

const testMnemonic = "legal winner thank year wave sausage worth useful legal winner thank yellow"

func writeTestWallet(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "wallets", "default")
	if err := os.MkdirAll(filepath.Join(root, "hotkeys"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	keyJSON := []byte(`{"secretPhrase":"` + testMnemonic + `"}`)
	if err := os.WriteFile(filepath.Join(root, "hotkeys", "default"), keyJSON, 0o600); err != nil {
		t.Fatalf("write hotkey: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "coldkey"), keyJSON, 0o600); err != nil {
		t.Fatalf("write coldkey: %v", err)
	}
	pubJSON := []byte(`{"ss58Address":"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"}`)
	if err := os.WriteFile(filepath.Join(root, "coldkeypub.txt"), pubJSON, 0o600); err != nil {
		t.Fatalf("write coldkeypub: %v", err)
	}
	return dir
}

func testConfig(dir string) *config.WalletEnvConfig {
	return &config.WalletEnvConfig{
		WalletName:   "default",
		WalletHotkey: "default",
		WalletDir:    dir,
	}
}

func TestLoad(t *testing.T) {
	k, err := Load(testConfig(writeTestWallet(t)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if k.Name() != "default" {
		t.Fatalf("unexpected name: %s", k.Name())
	}
	if k.ColdkeyAddress() != "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY" {
		t.Fatalf("unexpected coldkey address: %s", k.ColdkeyAddress())
	}

	// hotkey address must be a decodable SS58 string
	addr := k.HotkeyAddress()
	if _, _, err := subkey.SS58Decode(addr); err != nil {
		t.Fatalf("hotkey address %q not decodable: %v", addr, err)
	}
}

func TestUnlockColdkey(t *testing.T) {
	k, err := Load(testConfig(writeTestWallet(t)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if k.Coldkey() != nil {
		t.Fatalf("coldkey must stay locked until unlock")
	}

	if err := k.UnlockColdkey(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if k.Coldkey() == nil {
		t.Fatalf("coldkey not loaded after unlock")
	}

	// idempotent
	if err := k.UnlockColdkey(); err != nil {
		t.Fatalf("second unlock: %v", err)
	}
}

func TestLoadMissingWallet(t *testing.T) {
	cfg := testConfig(t.TempDir())
	if _, err := Load(cfg); err == nil {
		t.Fatalf("expected error for missing wallet files")
	}
}
