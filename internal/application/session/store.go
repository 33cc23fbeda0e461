// Package session reemplaza el almacenamiento local del navegador (token, userData, apiKey,
// apiSecret) por un contexto de sesión explícito en el servidor.
//
// Ciclo de vida: se crea en el login, se destruye en el logout o cuando el backend
// responde 401 a cualquier llamada autenticada.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

const nonceSize = 24

// Session contexto de un usuario autenticado.
// El apiSecret del proveedor se guarda sellado con secretbox; solo el Store lo abre.
type Session struct {
	ID           string
	BackendToken string
	User         entity.User
	APIKey       string
	sealedSecret []byte
	CreatedAt    time.Time
}

// Store almacén en memoria de sesiones, seguro para uso concurrente.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	key      [32]byte
	ttl      time.Duration
	now      func() time.Time
}

// NewStore crea el almacén. secret deriva la llave de sellado; ttl <= 0 desactiva la expiración.
func NewStore(secret string, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		key:      sha256.Sum256([]byte("session:" + secret)),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create abre una sesión nueva para el usuario autenticado en el backend.
func (s *Store) Create(backendToken string, user entity.User, creds pinapi.Credentials) (*Session, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("session: generar nonce: %w", err)
	}
	sess := &Session{
		ID:           uuid.New().String(),
		BackendToken: backendToken,
		User:         user,
		APIKey:       creds.APIKey,
		sealedSecret: secretbox.Seal(nonce[:], []byte(creds.APISecret), &nonce, &s.key),
		CreatedAt:    s.now(),
	}

	s.mu.Lock()
	s.sweepLocked(sess.CreatedAt)
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	out := *sess
	return &out, nil
}

// Get devuelve una copia de la sesión. ErrSessionExpired si no existe o venció.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	if s.ttl > 0 && s.now().Sub(sess.CreatedAt) > s.ttl {
		s.Destroy(id)
		return nil, domain.ErrSessionExpired
	}
	out := *sess
	return &out, nil
}

// UpdateUser reemplaza el perfil cacheado (ej. después de refrescar el saldo).
func (s *Store) UpdateUser(id string, user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.User = user
	}
}

// Destroy cierra la sesión. Es idempotente.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep elimina las sesiones vencidas que nadie volvió a consultar. Devuelve cuántas quitó.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

// RunSweeper ejecuta Sweep cada interval hasta que ctx se cancele.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) sweepLocked(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.CreatedAt) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Len número de sesiones abiertas.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Credentials abre el apiSecret sellado y devuelve la credencial del proveedor.
func (s *Store) Credentials(sess *Session) (pinapi.Credentials, error) {
	if len(sess.sealedSecret) < nonceSize {
		return pinapi.Credentials{APIKey: sess.APIKey}, nil
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sess.sealedSecret[:nonceSize])
	secret, ok := secretbox.Open(nil, sess.sealedSecret[nonceSize:], &nonce, &s.key)
	if !ok {
		return pinapi.Credentials{}, fmt.Errorf("session: no se pudo abrir el secreto del proveedor")
	}
	return pinapi.Credentials{APIKey: sess.APIKey, APISecret: string(secret)}, nil
}
