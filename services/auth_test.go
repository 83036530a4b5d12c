package services

import (
	"errors"
	"testing"
	"time"

	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.Oficina{}, &models.User{}, &models.Session{})
	return db
}

func createAuthTestUser(db *gorm.DB, email, password string) *models.User {
	oficina := &models.Oficina{Nombre: "Receptoría Test", Email: email + ".oficina"}
	db.Create(oficina)

	hash, _ := HashPassword(password)
	user := &models.User{
		OficinaID:    oficina.ID,
		Nombre:       "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleReceptor,
		IsActive:     true,
	}
	db.Create(user)
	return user
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secreto-123")
	assert.NoError(t, err)
	assert.NotEqual(t, "secreto-123", hash)

	assert.True(t, CheckPassword("secreto-123", hash))
	assert.False(t, CheckPassword("otro", hash))
}

func TestAuthenticate(t *testing.T) {
	db := setupAuthTestDB()
	createAuthTestUser(db, "maria@receptoria.cl", "secreto-123")

	t.Run("Valid Credentials", func(t *testing.T) {
		session, err := Authenticate(db, "maria@receptoria.cl", "secreto-123", "10.0.0.1", "test-agent")
		assert.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.True(t, session.ExpiresAt.After(time.Now()))
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, err := Authenticate(db, "maria@receptoria.cl", "incorrecta", "10.0.0.1", "test-agent")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("Unknown Email", func(t *testing.T) {
		_, err := Authenticate(db, "nadie@receptoria.cl", "secreto-123", "10.0.0.1", "test-agent")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("Inactive User", func(t *testing.T) {
		user := createAuthTestUser(db, "inactiva@receptoria.cl", "secreto-123")
		db.Model(user).Update("is_active", false)

		_, err := Authenticate(db, "inactiva@receptoria.cl", "secreto-123", "10.0.0.1", "test-agent")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})
}

func TestSessionLifecycle(t *testing.T) {
	db := setupAuthTestDB()
	user := createAuthTestUser(db, "maria@receptoria.cl", "secreto-123")

	t.Run("Validate Resolves User And Office", func(t *testing.T) {
		session, _ := CreateSession(db, user.ID, "10.0.0.1", "test-agent")

		validated, err := ValidateSession(db, session.Token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, validated.User.ID)
		assert.Equal(t, user.OficinaID, validated.User.Oficina.ID)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		_, err := ValidateSession(db, "no-such-token")
		assert.True(t, errors.Is(err, ErrSessionNotFound))
	})

	t.Run("Expired Session Deleted On Validation", func(t *testing.T) {
		session, _ := CreateSession(db, user.ID, "10.0.0.1", "test-agent")
		db.Model(&models.Session{}).Where("id = ?", session.ID).
			Update("expires_at", time.Now().Add(-time.Hour))

		_, err := ValidateSession(db, session.Token)
		assert.True(t, errors.Is(err, ErrSessionNotFound))

		var count int64
		db.Model(&models.Session{}).Where("id = ?", session.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Delete Session", func(t *testing.T) {
		session, _ := CreateSession(db, user.ID, "10.0.0.1", "test-agent")

		err := DeleteSession(db, session.Token)
		assert.NoError(t, err)

		_, err = ValidateSession(db, session.Token)
		assert.True(t, errors.Is(err, ErrSessionNotFound))
	})

	t.Run("Cleanup Expired", func(t *testing.T) {
		live, _ := CreateSession(db, user.ID, "10.0.0.1", "test-agent")
		stale, _ := CreateSession(db, user.ID, "10.0.0.1", "test-agent")
		db.Model(&models.Session{}).Where("id = ?", stale.ID).
			Update("expires_at", time.Now().Add(-time.Hour))

		err := CleanupExpiredSessions(db)
		assert.NoError(t, err)

		var count int64
		db.Model(&models.Session{}).Where("id = ?", live.ID).Count(&count)
		assert.Equal(t, int64(1), count)
		db.Model(&models.Session{}).Where("id = ?", stale.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}
