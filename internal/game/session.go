package game

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionOver возвращается для операций, требующих активной сессии.
var ErrSessionOver = errors.New("session is over")

type SessionState string

const (
	SessionActive SessionState = "active"
	SessionOver   SessionState = "over"
)

// Session хранит состояние одной игровой сессии: жизни, очки и позицию на
// кольцевом поле. Сессия не хранит XP: прогрессия переживает сессии.
type Session struct {
	Lives    int          `json:"lives"`
	Score    int          `json:"score"`
	Position int          `json:"position"`
	State    SessionState `json:"state"`
}

// SessionManager держит сессии в памяти по пользователю. Все операции
// сериализуются мьютексом, возвращаются снимки.
type SessionManager struct {
	mu            sync.Mutex
	sessions      map[uuid.UUID]*Session
	startingLives int
	boardSize     int
}

// NewSessionManager создает менеджер сессий с заданными правилами поля.
func NewSessionManager(startingLives, boardSize int) *SessionManager {
	return &SessionManager{
		sessions:      make(map[uuid.UUID]*Session),
		startingLives: startingLives,
		boardSize:     boardSize,
	}
}

// Get возвращает снимок сессии пользователя, создавая новую при первом
// обращении.
func (m *SessionManager) Get(userID uuid.UUID) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.session(userID)
}

// AddScore начисляет очки в активной сессии. В завершенной сессии ничего
// не меняет.
func (m *SessionManager) AddScore(userID uuid.UUID, points int) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session(userID)
	if session.State == SessionActive && points > 0 {
		session.Score += points
	}

	return *session
}

// LoseLife снимает одну жизнь с полом в 0; на нуле сессия терминальна и
// повторные вызовы ничего не меняют.
func (m *SessionManager) LoseLife(userID uuid.UUID) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session(userID)
	if session.State == SessionOver {
		return *session
	}

	session.Lives--
	if session.Lives <= 0 {
		session.Lives = 0
		session.State = SessionOver
	}

	return *session
}

// Move передвигает фишку на steps клеток по кольцу.
func (m *SessionManager) Move(userID uuid.UUID, steps int) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session(userID)
	if session.State == SessionOver {
		return *session, ErrSessionOver
	}

	if steps <= 0 {
		return *session, errors.New("steps must be positive")
	}

	session.Position = (session.Position + steps) % m.boardSize
	return *session, nil
}

// Reset начинает новую сессию: жизни, очки и позиция обнуляются до
// стартовых значений. Прогрессия (XP, уровень) намеренно не трогается.
func (m *SessionManager) Reset(userID uuid.UUID) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.newSession()
	m.sessions[userID] = session
	return *session
}

func (m *SessionManager) session(userID uuid.UUID) *Session {
	session, ok := m.sessions[userID]
	if !ok {
		session = m.newSession()
		m.sessions[userID] = session
	}

	return session
}

func (m *SessionManager) newSession() *Session {
	return &Session{
		Lives: m.startingLives,
		State: SessionActive,
	}
}
