package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/me/unishop/pkg/model"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second, nil), srv
}

func TestExchangeGoogleCredential_Success(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/auth/google" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req model.AuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.Credential != "id-token-123" {
			t.Errorf("credential = %q", req.Credential)
		}
		json.NewEncoder(w).Encode(model.AuthResponse{
			Success: true,
			Token:   "tok-xyz",
			User:    &model.UserProfile{ID: "u_1", Email: "a@uni.edu"},
		})
	}))
	defer srv.Close()

	token, user, err := client.ExchangeGoogleCredential(context.Background(), "id-token-123")
	if err != nil {
		t.Fatalf("ExchangeGoogleCredential: %v", err)
	}
	if token != "tok-xyz" || user.ID != "u_1" {
		t.Errorf("got token=%q user=%+v", token, user)
	}
}

func TestExchangeGoogleCredential_Rejected(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(model.AuthResponse{
			Success: false,
			Error:   &model.APIError{Code: model.CodeUnauthorized, Message: "bad credential"},
		})
	}))
	defer srv.Close()

	_, _, err := client.ExchangeGoogleCredential(context.Background(), "bogus")
	if !errors.Is(err, model.ErrAuthenticationFailed) {
		t.Errorf("err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestVerifySession(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "valid token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Errorf("Authorization = %q", got)
				}
				json.NewEncoder(w).Encode(model.VerifyResponse{
					Success: true,
					User:    &model.UserProfile{ID: "u_1"},
				})
			},
		},
		{
			name: "rejected token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: model.ErrSessionInvalid,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"success": true})
			},
			wantErr: model.ErrSessionInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(tt.handler)
			defer srv.Close()

			user, err := client.VerifySession(context.Background(), "tok")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifySession: %v", err)
			}
			if user.ID != "u_1" {
				t.Errorf("user = %+v", user)
			}
		})
	}
}

func TestRefreshToken(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/auth/refresh" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.RefreshResponse{Success: true, Token: "tok-2"})
	}))
	defer srv.Close()

	token, err := client.RefreshToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if token != "tok-2" {
		t.Errorf("token = %q, want tok-2", token)
	}
}

func TestCartEndpoints_PathsAndMethods(t *testing.T) {
	var gotMethod, gotPath string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(model.CartResponse{Success: true})
	}))
	defer srv.Close()

	ctx := context.Background()

	tests := []struct {
		name       string
		call       func() error
		wantMethod string
		wantPath   string
	}{
		{"fetch", func() error { _, err := client.FetchCart(ctx, "t"); return err }, "GET", "/api/cart"},
		{"add", func() error { return client.AddItem(ctx, "t", "p1", 2) }, "POST", "/api/cart/add"},
		{"remove", func() error { return client.RemoveItem(ctx, "t", "p1") }, "DELETE", "/api/cart/remove/p1"},
		{"update", func() error { return client.UpdateQuantity(ctx, "t", "p1", 3) }, "PUT", "/api/cart/update"},
		{"clear", func() error { return client.ClearCart(ctx, "t") }, "DELETE", "/api/cart/clear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("call: %v", err)
			}
			if gotMethod != tt.wantMethod || gotPath != tt.wantPath {
				t.Errorf("got %s %s, want %s %s", gotMethod, gotPath, tt.wantMethod, tt.wantPath)
			}
		})
	}
}

func TestCartEndpoints_ServerFailure(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(model.CartResponse{
			Success: false,
			Error:   &model.APIError{Code: model.CodeInternal, Message: "boom"},
		})
	}))
	defer srv.Close()

	err := client.AddItem(context.Background(), "t", "p1", 1)
	if !errors.Is(err, model.ErrRemoteOperationFailed) {
		t.Errorf("err = %v, want ErrRemoteOperationFailed", err)
	}
}

func TestDo_NetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", time.Second, nil)

	_, err := client.FetchCart(context.Background(), "t")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
