package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/ysato/recallnote/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Error messages double as the UI text. Unknown-username and wrong-password
// failures share one message so a response never reveals which field was wrong.
var (
	ErrDuplicateUser        = errors.New("そのユーザー名はすでに使われています。")
	ErrMissingUsername      = errors.New("ユーザーネームを登録してください。")
	ErrMissingPassword      = errors.New("パスワードを入力してください。")
	ErrIncorrectCredentials = errors.New("パスワードまたはユーザーネームが間違っています。")

	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)

// Service handles credentials and session lifecycle.
type Service struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

func NewService(db *gorm.DB, secret []byte) *Service {
	return &Service{db: db, secret: secret, ttl: SessionTTL}
}

// Register creates a user with a bcrypt-hashed credential (salt embedded).
func (s *Service) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingUsername
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a username/password pair.
func (s *Service) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ErrIncorrectCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectCredentials
	}
	return &user, nil
}
