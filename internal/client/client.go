// Package client is the HTTP client for the spendtrail backend: login,
// backup and restore. Requests carry an explicit timeout, and Backup is
// single-flight per client so overlapping triggers cannot produce unordered
// writes to the remote snapshot.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/dto"
)

// APIClient talks to the spendtrail backend.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	backingUp  atomic.Bool
}

// New creates an APIClient for the given base URL. timeout bounds every
// request end to end.
func New(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login authenticates (or auto-registers) the given credentials and returns
// the token response.
func (c *APIClient) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	body, err := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var out dto.LoginResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to decode login response: %w", err)
		}
		return &out, nil
	case http.StatusUnauthorized, http.StatusBadRequest:
		return nil, fmt.Errorf("%s: %w", readErrorMessage(resp.Body), apperrors.ErrUnauthorized)
	default:
		return nil, fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
}

// Backup pushes the full local ledger. A call made while another backup is
// still in flight returns ErrBackupInFlight without touching the network.
func (c *APIClient) Backup(ctx context.Context, token string, snapshot dto.BackupRequest) (*dto.BackupResponse, error) {
	if !c.backingUp.CompareAndSwap(false, true) {
		return nil, apperrors.ErrBackupInFlight
	}
	defer c.backingUp.Store(false)

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/backup", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%s: %w", readErrorMessage(resp.Body), apperrors.ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backup failed with status %d", resp.StatusCode)
	}

	var out dto.BackupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode backup response: %w", err)
	}
	return &out, nil
}

// Restore fetches the stored snapshot. Local state must not be touched by
// the caller until this returns a fully decoded success response.
func (c *APIClient) Restore(ctx context.Context, token string) (*dto.RestoreResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/restore", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("restore request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out dto.RestoreResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to decode restore response: %w", err)
		}
		return &out, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("no backup found: %w", apperrors.ErrNotFound)
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%s: %w", readErrorMessage(resp.Body), apperrors.ErrUnauthorized)
	default:
		return nil, fmt.Errorf("restore failed with status %d", resp.StatusCode)
	}
}

func readErrorMessage(r io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return "request rejected"
}
