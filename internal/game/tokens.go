package game

// DebitToken списывает один AI-токен из баланса. Баланс никогда не
// уходит в минус: при нулевом или отрицательном балансе списание
// отклоняется, баланс не меняется.
func DebitToken(balance int) (int, bool) {
	if balance <= 0 {
		return balance, false
	}

	return balance - 1, true
}
