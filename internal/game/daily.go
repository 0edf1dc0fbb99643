package game

import (
	"errors"
	"time"

	"example.com/finlit-quest/backend/internal/models"
)

var (
	// ErrChallengeExpired означает попытку завершить запись прошедшего дня.
	ErrChallengeExpired = errors.New("challenge is not for today")
	// ErrChallengeCompleted означает повторную попытку завершения за день.
	ErrChallengeCompleted = errors.New("challenge already completed")
)

// ChallengeDay нормализует момент времени до календарной даты в UTC.
func ChallengeDay(at time.Time) time.Time {
	year, month, day := at.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ChallengeExpired сообщает, относится ли запись челленджа к прошедшей
// дате. Это ленивый чек смены дня: никакого фонового планировщика нет,
// проверка выполняется на каждом чтении.
func ChallengeExpired(challenge models.DailyChallenge, now time.Time) bool {
	return !ChallengeDay(challenge.Date).Equal(ChallengeDay(now))
}

// CompleteChallenge помечает сегодняшний челлендж завершенным ровно один
// раз и возвращает заработанный XP: rewardXP за верный ответ, 0 за
// неверный. Запись прошедшего дня не завершается, повторная попытка за
// тот же день отклоняется без изменения записи.
func CompleteChallenge(challenge *models.DailyChallenge, now time.Time, wasCorrect bool, rewardXP int) (int, error) {
	if ChallengeExpired(*challenge, now) {
		return 0, ErrChallengeExpired
	}

	if challenge.Completed {
		return 0, ErrChallengeCompleted
	}

	if rewardXP < 0 {
		rewardXP = 0
	}

	earned := 0
	if wasCorrect {
		earned = rewardXP
	}

	challenge.Completed = true
	challenge.WasCorrect = wasCorrect
	challenge.XPEarned = earned

	return earned, nil
}
