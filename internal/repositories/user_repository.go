package repositories

import (
	"errors"

	"github.com/muje-team/muje-backend/internal/models"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a user id does not resolve to a row.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	UpdateUser(user *models.User) error
	AdjustStickerBalance(userID uint, delta int) (bool, error)
	DeleteUser(id uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL.
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL.
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL.
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL.
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// AdjustStickerBalance applies a delta to the sticker balance in one guarded
// update. Returns false without mutating when the delta would take the
// balance below zero, so racing spends cannot double-charge.
func (r *PostgresUserRepository) AdjustStickerBalance(userID uint, delta int) (bool, error) {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND sticker_balance + ? >= 0", userID, delta).
		Update("sticker_balance", gorm.Expr("sticker_balance + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteUser deletes a user by ID from PostgreSQL.
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}
