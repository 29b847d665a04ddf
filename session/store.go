package session

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	apperrors "github.com/needhomes/needhomes-go/internal/errors"
	"github.com/needhomes/needhomes-go/kvstore"
)

// Persisted storage keys. The layout is shared with other clients of the
// backend, so the names are part of the contract.
const (
	keyUser     = "user"
	keyKYC      = "kyc"
	keyTempUser = "temp_user"
)

// Store is the single authoritative holder of the current Session and
// VerificationRecord. Every mutation is mirrored to durable storage before it
// returns, and the in-memory state is rehydrated from storage once at
// construction. Consumers may subscribe to be notified when the session
// transitions to absent.
type Store struct {
	mu           sync.RWMutex
	kv           kvstore.Repo
	session      *Session
	verification *VerificationRecord
	tempUser     *string

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSubID   int
}

// NewStore rehydrates a Store from kv. Persisted values that fail to decode
// are dropped rather than poisoning the process.
func NewStore(kv kvstore.Repo) (*Store, error) {
	if kv == nil {
		return nil, errors.New("[NewStore] kv repo is required")
	}

	s := &Store{
		kv:          kv,
		subscribers: make(map[int]func()),
	}

	if err := rehydrate(kv, keyUser, &s.session); err != nil {
		return nil, errors.Wrap(err, "[NewStore] rehydrate session")
	}
	// The KV layout is shared with other clients; a persisted partial session
	// is as invalid as a corrupt one and gets the same treatment
	if s.session != nil && s.session.incomplete() {
		_ = kv.Delete(keyUser)
		s.session = nil
	}
	if err := rehydrate(kv, keyKYC, &s.verification); err != nil {
		return nil, errors.Wrap(err, "[NewStore] rehydrate verification")
	}
	if err := rehydrate(kv, keyTempUser, &s.tempUser); err != nil {
		return nil, errors.Wrap(err, "[NewStore] rehydrate temp user")
	}

	return s, nil
}

func rehydrate[T any](kv kvstore.Repo, key string, out **T) error {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		// Unreadable persisted state is treated as absent
		_ = kv.Delete(key)
		return nil
	}
	*out = &value
	return nil
}

// Session returns a copy of the current session, or nil when absent.
func (s *Store) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// SetSession replaces the whole session record. Partial sessions are invalid:
// identity, both credentials, and the session ID must all be present.
func (s *Store) SetSession(session *Session) error {
	if session == nil {
		return errors.Wrap(apperrors.ErrPartialSession, "[Store SetSession] nil session, use ClearSession")
	}
	if session.incomplete() {
		return errors.Wrap(apperrors.ErrPartialSession, "[Store SetSession]")
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "[Store SetSession] marshal")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(keyUser, raw); err != nil {
		return errors.Wrap(err, "[Store SetSession] persist")
	}
	copied := *session
	s.session = &copied
	return nil
}

// ClearSession sets the session to absent. It is idempotent; subscribers are
// notified only on a present-to-absent transition.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	hadSession := s.session != nil
	if hadSession {
		if err := s.kv.Delete(keyUser); err != nil {
			s.mu.Unlock()
			return errors.Wrap(err, "[Store ClearSession] persist")
		}
		s.session = nil
	}
	s.mu.Unlock()

	if hadSession {
		s.notifySessionEnded()
	}
	return nil
}

// Verification returns a copy of the current verification record, or nil.
func (s *Store) Verification() *VerificationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.verification == nil {
		return nil
	}
	copied := *s.verification
	return &copied
}

// SetVerification replaces the verification record.
func (s *Store) SetVerification(record *VerificationRecord) error {
	if record == nil {
		return errors.New("[Store SetVerification] nil record, use ClearVerification")
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "[Store SetVerification] marshal")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(keyKYC, raw); err != nil {
		return errors.Wrap(err, "[Store SetVerification] persist")
	}
	copied := *record
	s.verification = &copied
	return nil
}

// ClearVerification removes the verification record; idempotent.
func (s *Store) ClearVerification() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verification == nil {
		return nil
	}
	if err := s.kv.Delete(keyKYC); err != nil {
		return errors.Wrap(err, "[Store ClearVerification] persist")
	}
	s.verification = nil
	return nil
}

// TempUser returns the transient identifier parked during multi-step flows
// (e.g., the email address awaiting verification after registration).
func (s *Store) TempUser() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.tempUser == nil {
		return "", false
	}
	return *s.tempUser, true
}

// SetTempUser stores the transient flow identifier.
func (s *Store) SetTempUser(value string) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "[Store SetTempUser] marshal")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(keyTempUser, raw); err != nil {
		return errors.Wrap(err, "[Store SetTempUser] persist")
	}
	s.tempUser = &value
	return nil
}

// ClearTempUser removes the transient flow identifier; idempotent.
func (s *Store) ClearTempUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tempUser == nil {
		return nil
	}
	if err := s.kv.Delete(keyTempUser); err != nil {
		return errors.Wrap(err, "[Store ClearTempUser] persist")
	}
	s.tempUser = nil
	return nil
}

// Subscribe registers fn to run whenever the session transitions from present
// to absent. The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// notifySessionEnded runs subscribers outside the store lock so callbacks may
// read the store.
func (s *Store) notifySessionEnded() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
