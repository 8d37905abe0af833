package handler

import (
	"encoding/json"
	"net/http"

	"github.com/credmatch/backend/internal/service"
	"github.com/credmatch/backend/pkg/cpf"
)

// AuthHandler issues customer tokens for the offer API.
type AuthHandler struct {
	allowSandboxCPF bool
}

func NewAuthHandler(allowSandboxCPF bool) *AuthHandler {
	return &AuthHandler{allowSandboxCPF: allowSandboxCPF}
}

// TokenRequest is the body of POST /api/auth/token.
type TokenRequest struct {
	CPF string `json:"cpf"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token      string `json:"token"`
	CustomerID string `json:"customerId"`
}

// IssueToken validates the CPF and returns a signed bearer token for it.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	document, err := h.parseCPF(req.CPF)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid cpf")
		return
	}

	token, err := service.GenerateToken(document.String())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{Token: token, CustomerID: document.String()})
}

func (h *AuthHandler) parseCPF(value string) (cpf.CPF, error) {
	if h.allowSandboxCPF {
		return cpf.NewWithSandboxFixtures(value)
	}
	return cpf.New(value)
}
