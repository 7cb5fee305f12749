package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"shopx/internal/models"
	"shopx/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache DSN keeps every pooled connection on the same
	// in-memory database, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.PasswordReset{}))
	return db
}

func newToken() string {
	return uuid.New().String() + "-" + uuid.New().String()
}

func TestPasswordResetRepository_ReplaceSupersedes(t *testing.T) {
	repo := repositories.NewGORMPasswordResetRepository(newTestDB(t))

	first := &models.PasswordReset{Email: "jane@example.com", Token: newToken(), CreatedAt: time.Now()}
	assert.NoError(t, repo.Replace(first))

	second := &models.PasswordReset{Email: "jane@example.com", Token: newToken(), CreatedAt: time.Now()}
	assert.NoError(t, repo.Replace(second))

	// Exactly one live token per email, and it is the second one.
	_, err := repo.Consume(first.Token)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	reset, err := repo.Consume(second.Token)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", reset.Email)
}

func TestPasswordResetRepository_ReplaceKeepsOtherEmails(t *testing.T) {
	repo := repositories.NewGORMPasswordResetRepository(newTestDB(t))

	jane := &models.PasswordReset{Email: "jane@example.com", Token: newToken(), CreatedAt: time.Now()}
	john := &models.PasswordReset{Email: "john@example.com", Token: newToken(), CreatedAt: time.Now()}
	assert.NoError(t, repo.Replace(jane))
	assert.NoError(t, repo.Replace(john))

	reset, err := repo.Consume(jane.Token)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", reset.Email)

	reset, err = repo.Consume(john.Token)
	assert.NoError(t, err)
	assert.Equal(t, "john@example.com", reset.Email)
}

func TestPasswordResetRepository_ConsumeIsSingleUse(t *testing.T) {
	repo := repositories.NewGORMPasswordResetRepository(newTestDB(t))

	reset := &models.PasswordReset{Email: "jane@example.com", Token: newToken(), CreatedAt: time.Now()}
	assert.NoError(t, repo.Replace(reset))

	consumed, err := repo.Consume(reset.Token)
	assert.NoError(t, err)
	assert.Equal(t, reset.Email, consumed.Email)

	// The token was deleted on consumption.
	_, err = repo.Consume(reset.Token)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPasswordResetRepository_ConsumeUnknownToken(t *testing.T) {
	repo := repositories.NewGORMPasswordResetRepository(newTestDB(t))

	_, err := repo.Consume("never-issued")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
