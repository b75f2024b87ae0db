package model

// Wire types for the storefront HTTP API (see internal/api and internal/server).

// AuthRequest is the body of POST /api/auth/google.
type AuthRequest struct {
	Credential string `json:"credential"`
}

// AuthResponse is returned by the credential exchange endpoint.
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *UserProfile `json:"user,omitempty"`
	Error   *APIError    `json:"error,omitempty"`
}

// VerifyResponse is returned by GET /api/auth/verify.
type VerifyResponse struct {
	Success bool         `json:"success"`
	User    *UserProfile `json:"user,omitempty"`
	Error   *APIError    `json:"error,omitempty"`
}

// RefreshResponse is returned by POST /api/auth/refresh.
type RefreshResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// CartResponse is returned by GET /api/cart and by the cart mutation endpoints.
type CartResponse struct {
	Success   bool       `json:"success"`
	CartItems []CartItem `json:"cartItems,omitempty"`
	Error     *APIError  `json:"error,omitempty"`
}

// CartMutationRequest is the body of POST /api/cart/add and PUT /api/cart/update.
type CartMutationRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
