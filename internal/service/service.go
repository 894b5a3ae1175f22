package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack-app/fintrack/internal/models"
	"github.com/fintrack-app/fintrack/internal/repository"
)

// Sentinel errors the API layer maps to client-facing statuses. Anything
// else coming out of the service is treated as a storage failure.
var (
	ErrUsernameTaken  = errors.New("user with such username already exists")
	ErrUserNotFound   = errors.New("user with provided username is not found")
	ErrWrongPassword  = errors.New("invalid password")
	ErrNothingDeleted = errors.New("nothing was deleted")
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	DeleteUser(ctx context.Context, userID int) error

	// Transactions
	ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error)
	AddTransaction(ctx context.Context, userID int, req models.AddTransactionRequest) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID int, req models.UpdateTransactionRequest) error
	DeleteTransaction(ctx context.Context, userID, transactionID int) error

	// Analytics
	Analytics(ctx context.Context, userID int, q models.AnalyticsQuery) (*models.AnalyticsResponse, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string) Service {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 7 * 24 * time.Hour, // 7 days token validity
	}
}

// Authentication methods
func (s *DefaultService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	// Check if user already exists
	existingUser, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, ErrUsernameTaken
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// Create the user
	userID, err := s.repo.CreateUser(ctx, req.Username, string(hashedPassword))
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	// New users are logged in right away
	tokenUser := models.TokenUser{UserID: userID, Username: req.Username}
	token, err := s.generateJWT(tokenUser)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		User:  tokenUser,
		Token: token,
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	// Find user by username
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	// Check password match
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	// If valid credentials, create and send a new token
	tokenUser := models.TokenUser{UserID: user.UserID, Username: user.Username}
	token, err := s.generateJWT(tokenUser)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		User:  tokenUser,
		Token: token,
	}, nil
}

func (s *DefaultService) DeleteUser(ctx context.Context, userID int) error {
	deleted, err := s.repo.DeleteUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if !deleted {
		return ErrNothingDeleted
	}

	return nil
}

// Transactions
func (s *DefaultService) ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	transactions, err := s.repo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}

	return transactions, nil
}

func (s *DefaultService) AddTransaction(
	ctx context.Context,
	userID int,
	req models.AddTransactionRequest,
) (*models.Transaction, error) {
	transaction, err := s.repo.AddTransaction(ctx, userID, req.Date, req.Amount, req.Tags)
	if err != nil {
		return nil, fmt.Errorf("error adding transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction replaces date, amount, and tags wholesale. Updating a
// transaction the user does not own changes nothing and is not an error.
func (s *DefaultService) UpdateTransaction(
	ctx context.Context,
	userID int,
	req models.UpdateTransactionRequest,
) error {
	err := s.repo.UpdateTransaction(ctx, userID, req.TransactionID, req.Date, req.Amount, req.Tags)
	if err != nil {
		return fmt.Errorf("error updating transaction: %w", err)
	}

	return nil
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, userID, transactionID int) error {
	deleted, err := s.repo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}

	if !deleted {
		return ErrNothingDeleted
	}

	return nil
}

// Analytics runs the aggregation once per kind over the same date range and
// tag filter.
func (s *DefaultService) Analytics(
	ctx context.Context,
	userID int,
	q models.AnalyticsQuery,
) (*models.AnalyticsResponse, error) {
	spendings, err := s.repo.SumAmounts(ctx, userID, repository.Spendings, q.StartDate, q.EndDate, q.Tags)
	if err != nil {
		return nil, fmt.Errorf("error computing spendings: %w", err)
	}

	income, err := s.repo.SumAmounts(ctx, userID, repository.Income, q.StartDate, q.EndDate, q.Tags)
	if err != nil {
		return nil, fmt.Errorf("error computing income: %w", err)
	}

	return &models.AnalyticsResponse{
		Spendings: spendings.String(),
		Income:    income.String(),
	}, nil
}

// Helper methods
func (s *DefaultService) generateJWT(user models.TokenUser) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"userId":   user.UserID,
		"username": user.Username,
		"exp":      expirationTime.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
