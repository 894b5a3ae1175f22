package models

// Request models
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddTransactionRequest struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Tags   string `json:"tags"`
}

type UpdateTransactionRequest struct {
	TransactionID int    `json:"transactionId"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	Tags          string `json:"tags"`
}

type DeleteTransactionRequest struct {
	TransactionID int `json:"transactionId"`
}

// AnalyticsQuery is bound from the query string of the analytics endpoint.
type AnalyticsQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Tags      string `form:"tags"`
}

// Response models
type TokenUser struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
}

type AuthResponse struct {
	User  TokenUser `json:"user"`
	Token string    `json:"token"`
}

type AnalyticsResponse struct {
	Spendings string `json:"spendings"`
	Income    string `json:"income"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
