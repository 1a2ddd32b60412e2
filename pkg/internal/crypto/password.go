package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/yeisme/sharevault/pkg/configs"
)

// HashPassword 使用 bcrypt 哈希文件夹口令，cost 来自配置.
func HashPassword(password string) (string, error) {
	cost := configs.GetConfig().Crypto.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = configs.DefaultBcryptCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword 校验口令与已存哈希是否匹配.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false
	}

	return err == nil
}
