package subtensor

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// rawClient performs the JSON-RPC passthrough calls. Large state queries
// (whole-subnet buffers) go through here, so the sidecar may answer with
// zstd-compressed bodies.
type rawClient struct {
	httpClient *retryablehttp.Client
	decoder    *zstd.Decoder
	baseURL    string
}

func newRawClient(baseURL string) (*rawClient, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 5
	client.HTTPClient.Timeout = 30 * time.Second
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 20 * time.Second
	client.Logger = nil

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &rawClient{
		httpClient: client,
		decoder:    decoder,
		baseURL:    baseURL,
	}, nil
}

func (r *rawClient) request(method string, params []any) ([]byte, error) {
	jsonBody, err := sonic.Marshal(RPCRequestParams{Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	url := r.baseURL + "/substrate/rpc"
	req, err := retryablehttp.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "zstd")

	log.Debug().
		Str("method", method).
		Str("url", url).
		Int("body_size", len(jsonBody)).
		Msg("making raw rpc request")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", url).Msg("rpc request failed")
		return nil, fmt.Errorf("rpc request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.Header.Get("Content-Encoding") == "zstd" {
		respBody, err = r.decoder.DecodeAll(respBody, nil)
		if err != nil {
			log.Error().Err(err).Str("method", method).Msg("failed to decompress response")
			return nil, fmt.Errorf("failed to decompress response: %w", err)
		}
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().
			Str("method", method).
			Int("status_code", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("rpc request non-2xx")
		return nil, fmt.Errorf("rpc request returned status %d", resp.StatusCode)
	}

	var result RPCResultResponse
	if err := sonic.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse rpc response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("rpc response error: %v", result.Error)
	}

	raw := strings.TrimPrefix(result.Data.Result, "0x")
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rpc result hex: %w", err)
	}

	log.Debug().
		Str("method", method).
		Int("result_size", len(decoded)).
		Msg("raw rpc request completed")

	return decoded, nil
}
