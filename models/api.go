package models

// PasswordRequest is the body of POST /wallet/create and /wallet/unlock.
type PasswordRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of POST /wallet/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ExistsResponse is returned by GET /wallet/exists.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// AddressResponse is returned by create, unlock and GET /wallet/address.
type AddressResponse struct {
	Address string `json:"address"`
}

// BalanceResponse is returned by GET /wallet/balance. Balance is the wei
// amount formatted with 18 decimals.
type BalanceResponse struct {
	Balance    string `json:"balance"`
	BalanceWei string `json:"balanceWei"`
}

// StatusResponse carries a bare acknowledgement.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
