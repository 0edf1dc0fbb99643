package auth

import "golang.org/x/crypto/bcrypt"

// passwordCost фиксирует стоимость bcrypt для хэширования паролей.
const passwordCost = bcrypt.DefaultCost

// HashPassword хэширует пароль пользователя через bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword проверяет пароль против сохраненного bcrypt-хэша.
func ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
