package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	issuance "stablecoin/contexts/token-core/issuance-service"
	transferhook "stablecoin/contexts/token-core/transfer-hook-service"
	"stablecoin/internal/platform/ledger"
)

func newTestServer() *Server {
	runtime := ledger.NewInMemory(nil)
	tokenModule := issuance.NewInMemoryModule(runtime, nil)
	hookModule := transferhook.NewInMemoryModule(tokenModule.Store, nil)
	runtime.SetTransferValidator(hookModule.Validator)
	return New(tokenModule, hookModule, runtime, nil, ":0")
}

func doRequest(t *testing.T, s *Server, method string, path string, principal string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader([]byte(`{}`))
	}
	req := httptest.NewRequest(method, path, reader)
	if principal != "" {
		req.Header.Set("X-Principal", principal)
	}
	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, req)
	return recorder
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body %q: %v", recorder.Body.String(), err)
	}
	return payload.Code
}

func TestMissingPrincipalRejected(t *testing.T) {
	s := newTestServer()
	recorder := doRequest(t, s, http.MethodPost, "/api/token/v1/assets", "", map[string]any{
		"asset_ref": "asset-usd", "name": "Test Dollar", "symbol": "TUSD", "decimals": 6,
	})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if code := errorCode(t, recorder); code != "missing_principal" {
		t.Fatalf("expected missing_principal, got %q", code)
	}
}

func TestComplianceFlowBlocksTransfers(t *testing.T) {
	s := newTestServer()

	resp := doRequest(t, s, http.MethodPost, "/api/token/v1/assets", "alice", map[string]any{
		"asset_ref":             "asset-usd",
		"name":                  "Test Dollar",
		"symbol":                "TUSD",
		"decimals":              6,
		"transfer_hook_enabled": true,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("initialize token: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/hook/v1/hooks", "alice", map[string]any{
		"asset_ref": "asset-usd",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("initialize hook: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/minters", "alice", map[string]any{
		"minter": "bob", "quota": 1000,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("add minter: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/mint", "bob", map[string]any{
		"recipient": "carol", "amount": 500,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("mint: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/ledger/v1/assets/asset-usd/transfer", "carol", map[string]any{
		"recipient": "dave", "amount": 100,
	})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("clean transfer: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/blacklist", "alice", map[string]any{
		"user": "dave", "reason": "sanctions",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("blacklist add: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/ledger/v1/assets/asset-usd/transfer", "carol", map[string]any{
		"recipient": "dave", "amount": 100,
	})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("transfer to blacklisted: expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
	if code := errorCode(t, resp); code != "recipient_blacklisted" {
		t.Fatalf("expected recipient_blacklisted, got %q", code)
	}

	resp = doRequest(t, s, http.MethodPost, "/api/ledger/v1/assets/asset-usd/transfer", "dave", map[string]any{
		"recipient": "carol", "amount": 50,
	})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("transfer from blacklisted: expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
	if code := errorCode(t, resp); code != "sender_blacklisted" {
		t.Fatalf("expected sender_blacklisted, got %q", code)
	}

	resp = doRequest(t, s, http.MethodDelete, "/api/token/v1/assets/asset-usd/blacklist/dave", "alice", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("blacklist remove: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/ledger/v1/assets/asset-usd/transfer", "carol", map[string]any{
		"recipient": "dave", "amount": 100,
	})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("transfer after removal: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodGet, "/api/ledger/v1/assets/asset-usd/accounts/dave", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("balance: expected 200, got %d", resp.Code)
	}
	var balance struct {
		Balance uint64 `json:"balance"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &balance); err != nil {
		t.Fatalf("decode balance: %v", err)
	}
	if balance.Balance != 200 {
		t.Fatalf("expected dave balance 200, got %d", balance.Balance)
	}
}

func TestHookPauseHaltsTransfers(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/token/v1/assets", "alice", map[string]any{
		"asset_ref": "asset-usd", "name": "Test Dollar", "symbol": "TUSD", "decimals": 6,
		"transfer_hook_enabled": true,
	})
	doRequest(t, s, http.MethodPost, "/api/hook/v1/hooks", "alice", map[string]any{"asset_ref": "asset-usd"})
	doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/minters", "alice", map[string]any{
		"minter": "bob", "quota": 1000,
	})
	doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/mint", "bob", map[string]any{
		"recipient": "carol", "amount": 500,
	})

	resp := doRequest(t, s, http.MethodPost, "/api/hook/v1/hooks/asset-usd/pause", "alice", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("pause hook: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/ledger/v1/assets/asset-usd/transfer", "carol", map[string]any{
		"recipient": "dave", "amount": 100,
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("transfer while hook paused: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
	if code := errorCode(t, resp); code != "transfer_paused" {
		t.Fatalf("expected transfer_paused, got %q", code)
	}

	resp = doRequest(t, s, http.MethodPost, "/api/hook/v1/hooks/asset-usd/unpause", "alice", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("unpause hook: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}
	resp = doRequest(t, s, http.MethodPost, "/api/ledger/v1/assets/asset-usd/transfer", "carol", map[string]any{
		"recipient": "dave", "amount": 100,
	})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("transfer after unpause: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestTokenPauseHaltsTransfers(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/token/v1/assets", "alice", map[string]any{
		"asset_ref": "asset-usd", "name": "Test Dollar", "symbol": "TUSD", "decimals": 6,
		"transfer_hook_enabled": true,
	})
	doRequest(t, s, http.MethodPost, "/api/hook/v1/hooks", "alice", map[string]any{"asset_ref": "asset-usd"})
	doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/minters", "alice", map[string]any{
		"minter": "bob", "quota": 1000,
	})
	doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/mint", "bob", map[string]any{
		"recipient": "carol", "amount": 500,
	})

	resp := doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/pause", "alice", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("pause token: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, s, http.MethodPost, "/api/ledger/v1/assets/asset-usd/transfer", "carol", map[string]any{
		"recipient": "dave", "amount": 100,
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("transfer while token paused: expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
	if code := errorCode(t, resp); code != "token_paused" {
		t.Fatalf("expected token_paused, got %q", code)
	}

	resp = doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/unpause", "alice", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("unpause token: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}
	resp = doRequest(t, s, http.MethodPost, "/api/ledger/v1/assets/asset-usd/transfer", "carol", map[string]any{
		"recipient": "dave", "amount": 100,
	})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("transfer after unpause: expected 204, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSeizeEndpointGatedByDelegateFlag(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/token/v1/assets", "alice", map[string]any{
		"asset_ref": "asset-usd", "name": "Test Dollar", "symbol": "TUSD", "decimals": 6,
	})

	resp := doRequest(t, s, http.MethodPost, "/api/token/v1/assets/asset-usd/seize", "alice", map[string]any{
		"source": "mallory", "destination": "treasury", "amount": 10,
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("seize without delegate: expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
	if code := errorCode(t, resp); code != "permanent_delegate_not_enabled" {
		t.Fatalf("expected permanent_delegate_not_enabled, got %q", code)
	}
}
