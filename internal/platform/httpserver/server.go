package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	issuance "stablecoin/contexts/token-core/issuance-service"
	tokenerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	tokenhttp "stablecoin/contexts/token-core/issuance-service/transport/http"
	transferhook "stablecoin/contexts/token-core/transfer-hook-service"
	hookerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	hookhttp "stablecoin/contexts/token-core/transfer-hook-service/transport/http"
	"stablecoin/internal/platform/ledger"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "stablecoin/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
	token  issuance.Module
	hook   transferhook.Module
	ledger *ledger.InMemory
}

func New(
	tokenModule issuance.Module,
	hookModule transferhook.Module,
	ledgerRuntime *ledger.InMemory,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
		token:  tokenModule,
		hook:   hookModule,
		ledger: ledgerRuntime,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routing table for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/token/v1/assets", s.handleInitializeToken)
	s.mux.HandleFunc("GET /api/token/v1/assets/{asset_ref}", s.handleGetConfig)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/mint", s.handleMint)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/burn", s.handleBurn)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/freeze", s.handleFreeze)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/thaw", s.handleThaw)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/pause", s.handlePause)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/unpause", s.handleUnpause)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/minters", s.handleAddMinter)
	s.mux.HandleFunc("GET /api/token/v1/assets/{asset_ref}/minters", s.handleListMinters)
	s.mux.HandleFunc("GET /api/token/v1/assets/{asset_ref}/minters/{minter}", s.handleGetMinter)
	s.mux.HandleFunc("PUT /api/token/v1/assets/{asset_ref}/minters/{minter}", s.handleUpdateMinterQuota)
	s.mux.HandleFunc("DELETE /api/token/v1/assets/{asset_ref}/minters/{minter}", s.handleRemoveMinter)
	s.mux.HandleFunc("PUT /api/token/v1/assets/{asset_ref}/roles", s.handleUpdateRoles)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/authority", s.handleTransferAuthority)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/blacklist", s.handleAddToBlacklist)
	s.mux.HandleFunc("GET /api/token/v1/assets/{asset_ref}/blacklist", s.handleListBlacklist)
	s.mux.HandleFunc("DELETE /api/token/v1/assets/{asset_ref}/blacklist/{user}", s.handleRemoveFromBlacklist)
	s.mux.HandleFunc("POST /api/token/v1/assets/{asset_ref}/seize", s.handleSeize)

	s.mux.HandleFunc("POST /api/hook/v1/hooks", s.handleInitializeHook)
	s.mux.HandleFunc("POST /api/hook/v1/hooks/{asset_ref}/pause", s.handlePauseHook)
	s.mux.HandleFunc("POST /api/hook/v1/hooks/{asset_ref}/unpause", s.handleUnpauseHook)
	s.mux.HandleFunc("PUT /api/hook/v1/hooks/{asset_ref}/authority", s.handleUpdateHookAuthority)
	s.mux.HandleFunc("POST /api/hook/v1/hooks/{asset_ref}/validate", s.handleValidateTransfer)

	s.mux.HandleFunc("POST /api/ledger/v1/assets/{asset_ref}/transfer", s.handleLedgerTransfer)
	s.mux.HandleFunc("GET /api/ledger/v1/assets/{asset_ref}/accounts/{holder}", s.handleLedgerBalance)
}

// actingPrincipal resolves the pre-authenticated caller identity set by the
// gateway. Proof of control over the identity is the gateway's concern.
func actingPrincipal(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Principal"))
}

func (s *Server) handleInitializeToken(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.InitializeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.InitializeTokenHandler(r.Context(), acting, req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := s.token.Handler.GetConfigHandler(r.Context(), r.PathValue("asset_ref"))
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.MintHandler(r.Context(), acting, r.PathValue("asset_ref"), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBurn(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.BurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.token.Handler.BurnHandler(r.Context(), acting, r.PathValue("asset_ref"), req); err != nil {
		writeTokenDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFreeze(w http.ResponseWriter, r *http.Request) {
	s.handleFreezeState(w, r, true)
}

func (s *Server) handleThaw(w http.ResponseWriter, r *http.Request) {
	s.handleFreezeState(w, r, false)
}

func (s *Server) handleFreezeState(w http.ResponseWriter, r *http.Request, freeze bool) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.FreezeAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	var err error
	if freeze {
		err = s.token.Handler.FreezeAccountHandler(r.Context(), acting, r.PathValue("asset_ref"), req)
	} else {
		err = s.token.Handler.ThawAccountHandler(r.Context(), acting, r.PathValue("asset_ref"), req)
	}
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.handlePauseState(w, r, true)
}

func (s *Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	s.handlePauseState(w, r, false)
}

func (s *Server) handlePauseState(w http.ResponseWriter, r *http.Request, paused bool) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var err error
	if paused {
		err = s.token.Handler.PauseHandler(r.Context(), acting, r.PathValue("asset_ref"))
	} else {
		err = s.token.Handler.UnpauseHandler(r.Context(), acting, r.PathValue("asset_ref"))
	}
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddMinter(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.AddMinterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.AddMinterHandler(r.Context(), acting, r.PathValue("asset_ref"), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMinters(w http.ResponseWriter, r *http.Request) {
	resp, err := s.token.Handler.ListMintersHandler(r.Context(), r.PathValue("asset_ref"))
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMinter(w http.ResponseWriter, r *http.Request) {
	resp, err := s.token.Handler.GetMinterHandler(r.Context(), r.PathValue("asset_ref"), r.PathValue("minter"))
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMinterQuota(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.UpdateMinterQuotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.UpdateMinterQuotaHandler(
		r.Context(),
		acting,
		r.PathValue("asset_ref"),
		r.PathValue("minter"),
		req,
	)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveMinter(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	if err := s.token.Handler.RemoveMinterHandler(r.Context(), acting, r.PathValue("asset_ref"), r.PathValue("minter")); err != nil {
		writeTokenDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateRoles(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.UpdateRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.UpdateRolesHandler(r.Context(), acting, r.PathValue("asset_ref"), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransferAuthority(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.TransferAuthorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.TransferAuthorityHandler(r.Context(), acting, r.PathValue("asset_ref"), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddToBlacklist(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.AddToBlacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.token.Handler.AddToBlacklistHandler(r.Context(), acting, r.PathValue("asset_ref"), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListBlacklist(w http.ResponseWriter, r *http.Request) {
	resp, err := s.token.Handler.ListBlacklistHandler(r.Context(), r.PathValue("asset_ref"))
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveFromBlacklist(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	if err := s.token.Handler.RemoveFromBlacklistHandler(r.Context(), acting, r.PathValue("asset_ref"), r.PathValue("user")); err != nil {
		writeTokenDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeize(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req tokenhttp.SeizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.token.Handler.SeizeHandler(r.Context(), acting, r.PathValue("asset_ref"), req); err != nil {
		writeTokenDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInitializeHook(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeHookError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req hookhttp.InitializeHookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeHookError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.hook.Handler.InitializeHookHandler(r.Context(), acting, req)
	if err != nil {
		writeHookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePauseHook(w http.ResponseWriter, r *http.Request) {
	s.handleHookPauseState(w, r, true)
}

func (s *Server) handleUnpauseHook(w http.ResponseWriter, r *http.Request) {
	s.handleHookPauseState(w, r, false)
}

func (s *Server) handleHookPauseState(w http.ResponseWriter, r *http.Request, paused bool) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeHookError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var err error
	if paused {
		err = s.hook.Handler.PauseHookHandler(r.Context(), acting, r.PathValue("asset_ref"))
	} else {
		err = s.hook.Handler.UnpauseHookHandler(r.Context(), acting, r.PathValue("asset_ref"))
	}
	if err != nil {
		writeHookDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateHookAuthority(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeHookError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req hookhttp.UpdateHookAuthorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeHookError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.hook.Handler.UpdateHookAuthorityHandler(r.Context(), acting, r.PathValue("asset_ref"), req)
	if err != nil {
		writeHookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidateTransfer(w http.ResponseWriter, r *http.Request) {
	var req hookhttp.ValidateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeHookError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.hook.Handler.ValidateTransferHandler(r.Context(), r.PathValue("asset_ref"), req)
	if err != nil {
		writeHookDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type ledgerTransferRequest struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

type ledgerBalanceResponse struct {
	AssetRef string `json:"asset_ref"`
	Holder   string `json:"holder"`
	Balance  uint64 `json:"balance"`
}

// handleLedgerTransfer drives the runtime transfer path, including hook
// validation, for local development and end-to-end tests.
func (s *Server) handleLedgerTransfer(w http.ResponseWriter, r *http.Request) {
	acting := actingPrincipal(r)
	if acting == "" {
		writeTokenError(w, http.StatusUnauthorized, "missing_principal", "X-Principal header is required")
		return
	}
	var req ledgerTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.ledger.Transfer(r.Context(), r.PathValue("asset_ref"), acting, req.Recipient, req.Amount); err != nil {
		writeTransferError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLedgerBalance(w http.ResponseWriter, r *http.Request) {
	assetRef := r.PathValue("asset_ref")
	holder := r.PathValue("holder")
	writeJSON(w, http.StatusOK, ledgerBalanceResponse{
		AssetRef: assetRef,
		Holder:   holder,
		Balance:  s.ledger.Balance(assetRef, holder),
	})
}

func writeTokenDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tokenerrors.ErrUnauthorized):
		writeTokenError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, tokenerrors.ErrTokenPaused):
		writeTokenError(w, http.StatusConflict, "token_paused", err.Error())
	case errors.Is(err, tokenerrors.ErrQuotaExceeded):
		writeTokenError(w, http.StatusConflict, "quota_exceeded", err.Error())
	case errors.Is(err, tokenerrors.ErrAlreadyExists):
		writeTokenError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, tokenerrors.ErrAlreadyBlacklisted):
		writeTokenError(w, http.StatusConflict, "already_blacklisted", err.Error())
	case errors.Is(err, tokenerrors.ErrComplianceNotEnabled):
		writeTokenError(w, http.StatusUnprocessableEntity, "compliance_not_enabled", err.Error())
	case errors.Is(err, tokenerrors.ErrPermanentDelegateNotEnabled):
		writeTokenError(w, http.StatusUnprocessableEntity, "permanent_delegate_not_enabled", err.Error())
	case errors.Is(err, tokenerrors.ErrStringTooLong),
		errors.Is(err, tokenerrors.ErrInvalidAmount),
		errors.Is(err, tokenerrors.ErrInvalidPrincipal):
		writeTokenError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, tokenerrors.ErrAddressMismatch):
		writeTokenError(w, http.StatusBadRequest, "address_mismatch", err.Error())
	case errors.Is(err, tokenerrors.ErrNotFound):
		writeTokenError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ledger.ErrUnknownAsset):
		writeTokenError(w, http.StatusNotFound, "unknown_asset", err.Error())
	case errors.Is(err, ledger.ErrAccountFrozen):
		writeTokenError(w, http.StatusConflict, "account_frozen", err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeTokenError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount):
		writeTokenError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, ledger.ErrSupplyOverflow):
		writeTokenError(w, http.StatusConflict, "supply_overflow", err.Error())
	default:
		writeTokenError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeHookDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hookerrors.ErrUnauthorized):
		writeHookError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, hookerrors.ErrTransferPaused):
		writeHookError(w, http.StatusConflict, "transfer_paused", err.Error())
	case errors.Is(err, hookerrors.ErrTokenPaused):
		writeHookError(w, http.StatusConflict, "token_paused", err.Error())
	case errors.Is(err, hookerrors.ErrSenderBlacklisted):
		writeHookError(w, http.StatusForbidden, "sender_blacklisted", err.Error())
	case errors.Is(err, hookerrors.ErrRecipientBlacklisted):
		writeHookError(w, http.StatusForbidden, "recipient_blacklisted", err.Error())
	case errors.Is(err, hookerrors.ErrAlreadyExists):
		writeHookError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, hookerrors.ErrAddressMismatch):
		writeHookError(w, http.StatusBadRequest, "address_mismatch", err.Error())
	case errors.Is(err, hookerrors.ErrInvalidPrincipal):
		writeHookError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, hookerrors.ErrNotFound):
		writeHookError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeHookError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// writeTransferError maps runtime transfer failures, which may originate in
// the ledger or in the hook guard.
func writeTransferError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hookerrors.ErrSenderBlacklisted),
		errors.Is(err, hookerrors.ErrRecipientBlacklisted),
		errors.Is(err, hookerrors.ErrTransferPaused),
		errors.Is(err, hookerrors.ErrTokenPaused),
		errors.Is(err, hookerrors.ErrNotFound):
		writeHookDomainError(w, err)
	default:
		writeTokenDomainError(w, err)
	}
}

func writeTokenError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tokenhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeHookError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, hookhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
