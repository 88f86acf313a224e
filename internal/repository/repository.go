package repository

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finpilot/finai-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO finai.users (email, username, password_hash, full_name, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Email, user.Username, user.PasswordHash, user.FullName).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, username, password_hash, COALESCE(full_name, ''), created_at
		FROM finai.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.FullName, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UserExists reports whether a user with the email or username exists
func (r *Repository) UserExists(email, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM finai.users WHERE email = $1 OR username = $2)`
	if err := r.db.QueryRow(query, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// CreateTransaction creates a new transaction in the database
func (r *Repository) CreateTransaction(tx *models.Transaction) error {
	query := `
		INSERT INTO finai.transactions (user_id, transaction_type, amount, category, description, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, tx.UserID, tx.Type, tx.Amount, tx.Category, tx.Description, tx.TransactionDate).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves a user's transactions, newest first
func (r *Repository) ListTransactions(userID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, transaction_type, amount, category, COALESCE(description, ''), transaction_date, created_at
		FROM finai.transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC, id DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Category, &tx.Description, &tx.TransactionDate, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

// UpsertBudget creates or updates the budget for a category
func (r *Repository) UpsertBudget(budget *models.Budget) error {
	query := `
		INSERT INTO finai.budgets (user_id, category, budget_amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, category)
		DO UPDATE SET budget_amount = EXCLUDED.budget_amount
		RETURNING id`
	err := r.db.QueryRow(query, budget.UserID, budget.Category, budget.BudgetAmount).
		Scan(&budget.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}

// ListBudgets retrieves a user's budgets with the spent amount
// recomputed from expense transactions in the same category
func (r *Repository) ListBudgets(userID int64) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category, b.budget_amount,
		       COALESCE(SUM(ABS(t.amount)) FILTER (WHERE t.transaction_type = 'expense'), 0) AS spent_amount
		FROM finai.budgets b
		LEFT JOIN finai.transactions t
		  ON t.user_id = b.user_id AND t.category = b.category
		WHERE b.user_id = $1
		GROUP BY b.id, b.user_id, b.category, b.budget_amount
		ORDER BY b.category`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		var spent decimal.Decimal
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.BudgetAmount, &spent); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.SpentAmount = spent.InexactFloat64()
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read budgets: %w", err)
	}
	return budgets, nil
}

// ExpenseTotalsByCategory aggregates a user's expense transactions
func (r *Repository) ExpenseTotalsByCategory(userID int64) ([]models.CategoryTotal, error) {
	query := `
		SELECT category, SUM(ABS(amount)) AS total
		FROM finai.transactions
		WHERE user_id = $1 AND transaction_type = 'expense'
		GROUP BY category
		ORDER BY total DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		var total decimal.Decimal
		if err := rows.Scan(&ct.Category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan expense total: %w", err)
		}
		ct.Total = total.InexactFloat64()
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense totals: %w", err)
	}
	return totals, nil
}

// SaveChatMessage persists a chat message
func (r *Repository) SaveChatMessage(msg *models.ChatMessage) error {
	query := `
		INSERT INTO finai.chat_history (user_id, session_id, sender, message, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, msg.UserID, msg.SessionID, msg.Sender, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// SaveAnalysis persists an AI analysis result
func (r *Repository) SaveAnalysis(rec *models.AnalysisRecord) error {
	query := `
		INSERT INTO finai.ai_analysis (user_id, analysis_type, prompt, ai_response, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, rec.UserID, rec.AnalysisType, rec.Prompt, rec.AIResponse).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// OverspentBudgets returns every budget whose expense total exceeds
// the budgeted amount, joined with the owner's contact details
func (r *Repository) OverspentBudgets() ([]models.OverspentBudget, error) {
	query := `
		SELECT u.email, u.username, b.category, b.budget_amount,
		       COALESCE(SUM(ABS(t.amount)) FILTER (WHERE t.transaction_type = 'expense'), 0) AS spent_amount
		FROM finai.budgets b
		JOIN finai.users u ON u.id = b.user_id
		LEFT JOIN finai.transactions t
		  ON t.user_id = b.user_id AND t.category = b.category
		GROUP BY u.email, u.username, b.category, b.budget_amount
		HAVING COALESCE(SUM(ABS(t.amount)) FILTER (WHERE t.transaction_type = 'expense'), 0) > b.budget_amount`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query overspent budgets: %w", err)
	}
	defer rows.Close()

	var overspent []models.OverspentBudget
	for rows.Next() {
		var ob models.OverspentBudget
		var spent decimal.Decimal
		if err := rows.Scan(&ob.Email, &ob.Username, &ob.Category, &ob.BudgetAmount, &spent); err != nil {
			return nil, fmt.Errorf("failed to scan overspent budget: %w", err)
		}
		ob.SpentAmount = spent.InexactFloat64()
		overspent = append(overspent, ob)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overspent budgets: %w", err)
	}
	return overspent, nil
}
