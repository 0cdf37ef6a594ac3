package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/ysato/recallnote/config"
	"github.com/ysato/recallnote/models"
)

const (
	CookieName = "recallnote_session"
	SessionTTL = 7 * 24 * time.Hour
)

// sessionClaims wraps the server-side session id in a signed token so a
// tampered cookie fails verification before we ever touch the database.
type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// StartSession persists a session row and sets the signed session cookie.
func (s *Service) StartSession(w http.ResponseWriter, user *models.User) error {
	id, err := gonanoid.New()
	if err != nil {
		return err
	}

	session := models.Session{
		ID:        id,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
		SessionID: id,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl / time.Second),
	}
	if !config.Env.IsDevelopment {
		cookie.Domain = config.Env.Domain
	}
	http.SetCookie(w, cookie)
	return nil
}

// EndSession removes the server-side session and expires the cookie. Logging
// out without a valid session is a no-op.
func (s *Service) EndSession(w http.ResponseWriter, r *http.Request) {
	if id, err := s.sessionIDFromRequest(r); err == nil {
		s.db.Delete(&models.Session{}, "id = ?", id)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// UserFromRequest resolves the session cookie to its owning user. Any failure
// mode means "not authenticated", never a server error.
func (s *Service) UserFromRequest(r *http.Request) (*models.User, error) {
	id, err := s.sessionIDFromRequest(r)
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, ErrInvalidSession
	}
	if session.ExpiresAt.Before(time.Now()) {
		s.db.Delete(&session)
		return nil, ErrSessionExpired
	}

	var user models.User
	if err := s.db.First(&user, session.UserID).Error; err != nil {
		return nil, ErrInvalidSession
	}
	return &user, nil
}

func (s *Service) sessionIDFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", ErrInvalidSession
	}
	return claims.SessionID, nil
}
