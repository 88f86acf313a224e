package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/finpilot/finai-service/internal/assistant"
	"github.com/finpilot/finai-service/internal/config"
	"github.com/finpilot/finai-service/internal/integrations/gemini"
	"github.com/finpilot/finai-service/internal/integrations/googleauth"
	"github.com/finpilot/finai-service/internal/middleware"
	"github.com/finpilot/finai-service/internal/models"
	"github.com/finpilot/finai-service/internal/repository"
	"github.com/finpilot/finai-service/internal/utils"
)

// Analysis types accepted by AnalyzeSpending
const (
	AnalysisSpending   = "spending"
	AnalysisInvestment = "investment"
	AnalysisBudget     = "budget"
)

// Service handles business logic
type Service struct {
	repo      *repository.Repository
	log       *logrus.Logger
	config    *config.Config
	assistant *assistant.Router
	predictor assistant.SalaryPredictor
	llm       *gemini.Client
	google    *googleauth.Client
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config,
	router *assistant.Router, predictor assistant.SalaryPredictor,
	llm *gemini.Client, google *googleauth.Client) *Service {
	return &Service{
		repo:      repo,
		log:       log,
		config:    cfg,
		assistant: router,
		predictor: predictor,
		llm:       llm,
		google:    google,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(email, username, password, fullName string) (*models.User, error) {
	exists, err := s.repo.UserExists(email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, *models.User, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, user, nil
}

// GoogleLogin verifies a Google ID token and signs the user in,
// creating an account on first sight
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (string, *models.User, error) {
	info, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, fmt.Errorf("google authentication failed: %w", err)
	}

	user, err := s.repo.FindUserByEmail(info.Email)
	if err != nil {
		username := info.Email
		if at := strings.Index(username, "@"); at > 0 {
			username = username[:at]
		}
		user = &models.User{
			Email:    info.Email,
			Username: username,
			FullName: info.Name,
			// No local password; password login stays impossible
			PasswordHash: "",
		}
		if err := s.repo.CreateUser(user); err != nil {
			return "", nil, err
		}
		s.log.Infof("User created via Google: %s", user.Email)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Infof("User logged in via Google: %s", user.Email)
	return token, user, nil
}

func (s *Service) issueToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// CreateTransaction records a transaction for the authenticated user
func (s *Service) CreateTransaction(ctx context.Context, txType string, amount float64, category, description, date string) (*models.Transaction, error) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if txType != models.TransactionIncome && txType != models.TransactionExpense {
		return nil, fmt.Errorf("invalid transaction type: %s", txType)
	}
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid transaction date: %s", date)
	}

	tx := &models.Transaction{
		UserID:          userID,
		Type:            txType,
		Amount:          amount,
		Category:        category,
		Description:     description,
		TransactionDate: date,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		return nil, err
	}

	s.log.Infof("Transaction created for user %d: %s %s", userID, tx.Type, tx.Category)
	return tx, nil
}

// ListTransactions returns the authenticated user's transactions
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(userID)
}

// UpsertBudget creates or updates the authenticated user's budget for
// a category
func (s *Service) UpsertBudget(ctx context.Context, category string, amount float64) (*models.Budget, error) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if amount < 0 {
		return nil, fmt.Errorf("budget amount must not be negative")
	}

	budget := &models.Budget{
		UserID:       userID,
		Category:     category,
		BudgetAmount: amount,
	}
	if err := s.repo.UpsertBudget(budget); err != nil {
		return nil, err
	}

	s.log.Infof("Budget upserted for user %d: %s", userID, category)
	return budget, nil
}

// ListBudgets returns the authenticated user's budgets with computed
// spent amounts
func (s *Service) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBudgets(userID)
}

// Chat routes a free-text message through the assistant and persists
// both sides of the exchange. The assistant itself always answers;
// only store or auth failures surface as errors.
func (s *Service) Chat(ctx context.Context, message, sessionID string) (string, string, error) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return "", "", err
	}
	if message == "" {
		return "", "", fmt.Errorf("message is required")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if err := s.repo.SaveChatMessage(&models.ChatMessage{
		UserID:    userID,
		SessionID: sessionID,
		Sender:    models.SenderUser,
		Message:   message,
	}); err != nil {
		s.log.Warnf("Failed to persist user chat message: %v", err)
	}

	transactions, err := s.repo.ListTransactions(userID)
	if err != nil {
		return "", "", err
	}
	fc := assistant.BuildContext(transactions)

	reply := s.assistant.Respond(ctx, message, fc)

	if err := s.repo.SaveChatMessage(&models.ChatMessage{
		UserID:    userID,
		SessionID: sessionID,
		Sender:    models.SenderAI,
		Message:   reply,
	}); err != nil {
		s.log.Warnf("Failed to persist assistant chat message: %v", err)
	}

	return reply, sessionID, nil
}

// AnalyzeSpending aggregates the user's expenses and asks the hosted
// assistant for an analysis, degrading to the local breakdown when the
// remote call fails. The result is persisted to ai_analysis.
func (s *Service) AnalyzeSpending(ctx context.Context, analysisType string) (string, error) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return "", err
	}
	if analysisType == "" {
		analysisType = AnalysisSpending
	}

	totals, err := s.repo.ExpenseTotalsByCategory(userID)
	if err != nil {
		return "", err
	}
	if len(totals) == 0 {
		return "No transaction data found for analysis.", nil
	}

	var lines []string
	expenses := make(map[string]float64, len(totals))
	for _, ct := range totals {
		lines = append(lines, fmt.Sprintf("- %s: %s", ct.Category, utils.FormatINR(ct.Total)))
		expenses[ct.Category] = ct.Total
	}
	transactionsText := strings.Join(lines, "\n")

	var prompt string
	switch analysisType {
	case AnalysisInvestment:
		prompt = gemini.InvestmentAdvicePrompt(transactionsText, "moderate")
	case AnalysisBudget:
		transactions, err := s.repo.ListTransactions(userID)
		if err != nil {
			return "", err
		}
		fc := assistant.BuildContext(transactions)
		prompt = gemini.BudgetAssistantPrompt(fc.Income, transactionsText, "build an emergency fund and save consistently")
	default:
		analysisType = AnalysisSpending
		prompt = gemini.AnalyzeSpendingPrompt(transactionsText)
	}

	analysis, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.log.Warnf("Remote analysis unavailable, using local breakdown: %v", err)
		analysis = assistant.FormatBreakdown(expenses)
	}

	if err := s.repo.SaveAnalysis(&models.AnalysisRecord{
		UserID:       userID,
		AnalysisType: analysisType,
		Prompt:       transactionsText,
		AIResponse:   analysis,
	}); err != nil {
		s.log.Warnf("Failed to persist analysis: %v", err)
	}

	return analysis, nil
}

// SalaryPlan returns the raw prediction for the authenticated user's
// current financial context
func (s *Service) SalaryPlan(ctx context.Context) (assistant.PredictionResult, error) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return assistant.PredictionResult{}, err
	}

	transactions, err := s.repo.ListTransactions(userID)
	if err != nil {
		return assistant.PredictionResult{}, err
	}
	fc := assistant.BuildContext(transactions)

	return s.predictor.Predict(fc.Income, fc.Expenses), nil
}
