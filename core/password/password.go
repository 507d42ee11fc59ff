package password

import "golang.org/x/crypto/bcrypt"

// MaxLen is bcrypt's hard input limit in bytes.
const MaxLen = 72

func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Compare(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// TooLong reports whether plain exceeds bcrypt's 72-byte limit.
func TooLong(plain string) bool {
	return len([]byte(plain)) > MaxLen
}
