package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// 与 werkzeug generate_password_hash(method="pbkdf2:sha256", salt_length=8) 兼容：
// pbkdf2:sha256:<iterations>$<salt>$<hex digest>
const (
	hashMethod     = "pbkdf2:sha256"
	DefaultIter    = 600000
	SaltLength     = 8
	derivedKeySize = sha256.Size
	saltChars      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrEmptyPassword = errors.New("auth: empty password")

// Hasher 迭代次数可调（测试用小值）
type Hasher struct {
	Iterations int
}

func (h Hasher) Hash(pw string) (string, error) {
	if pw == "" {
		return "", ErrEmptyPassword
	}
	iter := h.Iterations
	if iter <= 0 {
		iter = DefaultIter
	}
	salt, err := genSalt(SaltLength)
	if err != nil {
		return "", err
	}
	dk := pbkdf2.Key([]byte(pw), []byte(salt), iter, derivedKeySize, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", hashMethod, iter, salt, hex.EncodeToString(dk)), nil
}

// Check 按哈希里记录的迭代次数重算，常量时间比较
func (h Hasher) Check(pw, hashed string) bool {
	parts := strings.SplitN(hashed, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, digest := parts[0], parts[1], parts[2]
	if !strings.HasPrefix(method, hashMethod) {
		return false
	}
	iter := DefaultIter
	if rest := strings.TrimPrefix(method, hashMethod); rest != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(rest, ":"))
		if err != nil || n <= 0 {
			return false
		}
		iter = n
	}
	want, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(pw), []byte(salt), iter, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func genSalt(n int) (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(saltChars)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(saltChars[idx.Int64()])
	}
	return b.String(), nil
}
