// Package session provides Valkey-backed HTTP session management.
// Sessions are identified by a secure cookie and stored as JSON in Valkey
// with automatic TTL expiry. A session holds one browser's filter criteria.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"catalogview/internal/filter"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "cv_session"

	// DefaultTTL is how long a session lives in Valkey before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "criteria:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data holds the session payload stored in Valkey.
type Data struct {
	Criteria  filter.Criteria `json:"criteria"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// A zero ttl means DefaultTTL. When secure is true, cookies carry the
// Secure flag (HTTPS only).
func NewStore(client *redis.Client, ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
		secure: secure,
	}
}

// Get retrieves session data from Valkey using the session ID from the
// request cookie. Returns nil if no valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil // No cookie = no session (not an error)
	}

	payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}

	return &data, nil
}

// ErrConflict is returned by Update when concurrent writers kept changing
// the session for every attempt.
var ErrConflict = errors.New("session: too many concurrent updates")

// maxUpdateAttempts bounds the optimistic retries in Update.
const maxUpdateAttempts = 10

// Save stores data under the request's session ID, creating a new session
// and setting the cookie when the request carries no ID that exists in
// Valkey. The TTL is reset on every save. Returns the session ID.
func (s *Store) Save(ctx context.Context, w http.ResponseWriter, r *http.Request, data *Data) (string, error) {
	id, err := s.resolveID(ctx, r)
	if err != nil {
		return "", err
	}

	stamp(data)
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	s.setCookie(w, id)
	return id, nil
}

// Update applies fn to the current session data and stores the result in
// one optimistic transaction. If another request changes the session
// between the read and the write, the read and fn are repeated on the
// fresh data, so concurrent updates are applied one after the other and
// none is lost. fn may therefore run more than once and must not have
// side effects outside data. A session is created when none exists.
func (s *Store) Update(ctx context.Context, w http.ResponseWriter, r *http.Request, fn func(*Data)) (*Data, error) {
	id, err := s.resolveID(ctx, r)
	if err != nil {
		return nil, err
	}
	key := keyPrefix + id

	var result *Data
	txf := func(tx *redis.Tx) error {
		data := &Data{}
		payload, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("session get: %w", err)
		default:
			if err := json.Unmarshal(payload, data); err != nil {
				return fmt.Errorf("session unmarshal: %w", err)
			}
		}

		fn(data)
		stamp(data)
		out, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("session marshal: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		if err == nil {
			result = data
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("session update: %w", err)
		}
		s.setCookie(w, id)
		return result, nil
	}
	return nil, ErrConflict
}

// resolveID returns the request's session ID if Valkey holds a session
// for it, or a freshly generated one. IDs chosen by the client are never
// adopted.
func (s *Store) resolveID(ctx context.Context, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		n, err := s.client.Exists(ctx, keyPrefix+cookie.Value).Result()
		if err != nil {
			return "", fmt.Errorf("session lookup: %w", err)
		}
		if n == 1 {
			return cookie.Value, nil
		}
	}

	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	return id, nil
}

// setCookie refreshes the cookie so its lifetime tracks the Valkey TTL.
func (s *Store) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
}

func stamp(data *Data) {
	now := time.Now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.UpdatedAt = now
}

// Destroy removes the session from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	if err := s.client.Del(ctx, keyPrefix+cookie.Value).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		MaxAge:   -1,
	})

	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
