package session

import (
	"encoding/json"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	usermodel "github.com/dtalent/hr-client/internal/core/datamodel/user"
)

// The store holds exactly two logical keys across app restarts: the session
// token and the serialized user. No TTL, no refresh logic; login overwrites,
// logout clears both as a set.
const (
	KeyToken = "auth_token"
	KeyUser  = "auth_user"
)

// Entry is one persisted key/value pair.
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string {
	return "session_entries"
}

// Store is the on-device key/value store backing the session.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite file at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return NewStore(db)
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Set(key, value string) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error
}

func (s *Store) Get(key string) (string, bool, error) {
	var entry Entry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Clear removes the given keys in one statement so the pair never survives
// half-deleted.
func (s *Store) Clear(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Where("key IN ?", keys).Delete(&Entry{}).Error
}

// SaveSession persists the token and user produced by a successful sign-in.
func (s *Store) SaveSession(token string, u usermodel.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.Set(KeyToken, token); err != nil {
		return err
	}
	return s.Set(KeyUser, string(raw))
}

// LoadSession returns the persisted token and user, or zero values when no
// session exists. A token without a readable user record still counts as a
// session; the profile panel just renders empty.
func (s *Store) LoadSession() (string, *usermodel.User, error) {
	token, ok, err := s.Get(KeyToken)
	if err != nil || !ok {
		return "", nil, err
	}

	raw, ok, err := s.Get(KeyUser)
	if err != nil || !ok {
		return token, nil, err
	}

	var u usermodel.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return token, nil, nil
	}
	return token, &u, nil
}

func (s *Store) ClearSession() error {
	return s.Clear(KeyToken, KeyUser)
}

// Token implements the gateway token source. Absent token yields "" so
// unauthenticated calls simply carry no Authorization header.
func (s *Store) Token() (string, error) {
	token, _, err := s.Get(KeyToken)
	return token, err
}

func (s *Store) IsAuthenticated() (bool, error) {
	token, ok, err := s.Get(KeyToken)
	if err != nil {
		return false, err
	}
	return ok && token != "", nil
}
