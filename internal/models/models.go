package models

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseCategory string

type Difficulty string

type ChatMode string

type ChatRole string

const (
	CategoryHousing       ExpenseCategory = "housing"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryFood          ExpenseCategory = "food"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryBills         ExpenseCategory = "bills"
	CategoryOther         ExpenseCategory = "other"

	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	ChatModeAdvisor ChatMode = "advisor"
	ChatModeHype    ChatMode = "hype"
	ChatModeRoast   ChatMode = "roast"

	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PlayerProgress хранит накопительный прогресс игрока. Level всегда
// выводится из XP и не хранится отдельно от него.
type PlayerProgress struct {
	UserID        uuid.UUID `json:"user_id"`
	XP            int       `json:"xp"`
	Level         int       `json:"level"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LeveledUp     bool      `json:"leveled_up"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Answered int    `json:"answered"`
	Correct  int    `json:"correct"`
}

type Question struct {
	ID          uuid.UUID  `json:"id"`
	Text        string     `json:"text"`
	Options     []string   `json:"options"`
	AnswerIndex int        `json:"-"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Points      int        `json:"points"`
}

// DailyChallenge живет одну календарную дату; при чтении в новый день
// запись сбрасывается и назначается новый вопрос.
type DailyChallenge struct {
	UserID     uuid.UUID  `json:"user_id"`
	Date       time.Time  `json:"date"`
	QuestionID *uuid.UUID `json:"question_id,omitempty"`
	Completed  bool       `json:"completed"`
	WasCorrect bool       `json:"was_correct"`
	XPEarned   int        `json:"xp_earned"`
}

type TokenLedger struct {
	UserID    uuid.UUID `json:"user_id"`
	Balance   int       `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Expense struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	AmountCents int64           `json:"amount_cents"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Merchant    *string         `json:"merchant,omitempty"`
	SpentAt     time.Time       `json:"spent_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Budget struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Category   ExpenseCategory `json:"category"`
	LimitCents int64           `json:"limit_cents"`
	SpentCents int64           `json:"spent_cents"`
	Color      string          `json:"color"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type BankLink struct {
	UserID      uuid.UUID `json:"user_id"`
	AccessToken string    `json:"-"`
	Institution *string   `json:"institution,omitempty"`
	LinkedAt    time.Time `json:"linked_at"`
}

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      ChatRole  `json:"role"`
	Mode      ChatMode  `json:"mode"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

// ExpenseCategories перечисляет фиксированную таксономию расходов.
var ExpenseCategories = []ExpenseCategory{
	CategoryHousing,
	CategoryTransport,
	CategoryFood,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryOther,
}

// IsValidCategory проверяет, входит ли значение в таксономию.
func IsValidCategory(value ExpenseCategory) bool {
	for _, category := range ExpenseCategories {
		if category == value {
			return true
		}
	}
	return false
}
