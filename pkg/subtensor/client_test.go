package subtensor

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tensorplex-labs/taocli/internal/config"
	"github.com/tensorplex-labs/taocli/pkg/balance"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := &config.SubtensorEnvConfig{
		SubtensorNetwork: "test",
		SubtensorHost:    ts.Listener.Addr().(*net.TCPAddr).IP.String(),
		SubtensorPort:    fmt.Sprint(ts.Listener.Addr().(*net.TCPAddr).Port),
	}
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.BaseURL = ts.URL
	c.client.SetBaseURL(ts.URL)
	c.raw.baseURL = ts.URL
	return c
}

func TestNewClient_NilConfig(t *testing.T) {
	_, err := NewClient(nil)
	if err == nil {
		t.Fatalf("expected error when cfg is nil")
	}
}

func TestGetBalance_Success(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chain/balance/5Gabc" || r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"rao":1500000000},"error":null}`))
	})

	b, err := c.GetBalance("5Gabc")
	if err != nil {
		t.Fatalf("GetBalance error: %v", err)
	}
	if b.Rao != 1500000000 {
		t.Fatalf("unexpected balance: %+v", b)
	}
}

func TestGetBalance_HTTPError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad"))
	})
	_, err := c.GetBalance("5Gabc")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetHotkeyOwner_Unregistered(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"owner":"","registered":false},"error":null}`))
	})

	owner, registered, err := c.GetHotkeyOwner("5Ghot")
	if err != nil {
		t.Fatalf("GetHotkeyOwner error: %v", err)
	}
	if registered || owner != "" {
		t.Fatalf("unexpected owner: %q registered=%v", owner, registered)
	}
}

func TestGetTransferFee_Success(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chain/transfer-fee" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"rao":125000},"error":null}`))
	})

	fee, err := c.GetTransferFee("5Gfrom", "5Gdest", balance.FromRao(10))
	if err != nil {
		t.Fatalf("GetTransferFee error: %v", err)
	}
	if fee.Rao != 125000 {
		t.Fatalf("unexpected fee: %+v", fee)
	}
}

func TestSubmitRemoveStake_RejectedKind(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chain/remove-stake" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"success":false,"kind":"stakeRejected","detail":"NotEnoughStakeToWithdraw"},"error":null}`))
	})

	out, err := c.SubmitRemoveStake("5Ghot", balance.FromRao(100), WaitOpts{WaitForInclusion: true})
	if err != nil {
		t.Fatalf("SubmitRemoveStake error: %v", err)
	}
	if out.Success || out.Kind != KindStakeRejected {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestSubmitTransfer_Success(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chain/transfer" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"success":true,"blockHash":"0xfeed"},"error":null}`))
	})

	out, err := c.SubmitTransfer("5Gdest", balance.FromRao(100), true, WaitOpts{WaitForFinalization: true})
	if err != nil {
		t.Fatalf("SubmitTransfer error: %v", err)
	}
	if !out.Success || out.BlockHash != "0xfeed" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestRPCRequest_HexResult(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/substrate/rpc" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"result":"0xdeadbeef"},"error":null}`))
	})

	buf, err := c.RPCRequest("subnetInfo_getSubnetState", []any{1, nil})
	if err != nil {
		t.Fatalf("RPCRequest error: %v", err)
	}
	if len(buf) != 4 || buf[0] != 0xde || buf[3] != 0xef {
		t.Fatalf("unexpected bytes: %x", buf)
	}
}

func TestRPCRequest_EnvelopeError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"success":false,"data":{"result":""},"error":{"msg":"boom"}}`))
	})
	_, err := c.RPCRequest("subnetInfo_getSubnetState", []any{1, nil})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetSubnetState_EmptyIsNull(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"success":true,"data":{"result":"0x"},"error":null}`))
	})

	s, err := c.GetSubnetState(42)
	if err != nil {
		t.Fatalf("GetSubnetState error: %v", err)
	}
	if !s.IsNull {
		t.Fatalf("expected null sentinel, got %+v", s)
	}
}
