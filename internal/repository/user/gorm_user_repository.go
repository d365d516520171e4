// File: internal/repository/user/gorm_user_repository.go

package user

import (
    "context"
    "errors"
    "log"

    "gorm.io/gorm"

    "github.com/medichat/go-medichat/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
    db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
    return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
    if user == nil {
        return nil, errors.New("user cannot be nil")
    }
    if err := user.IsValid(); err != nil {
        return nil, err
    }

    if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
        log.Printf("[UserRepository] Database error during user creation: %v", err)
        return nil, errors.New("database error creating user")
    }
    return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
    if id == 0 {
        return nil, errors.New("invalid user ID")
    }

    var user domain.User
    err := r.db.WithContext(ctx).First(&user, id).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrUserNotFound
        }
        log.Printf("[UserRepository] FindByID database error: %v", err)
        return nil, errors.New("database query failed")
    }
    return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
    if email == "" {
        return nil, errors.New("invalid email")
    }

    var user domain.User
    err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrUserNotFound
        }
        log.Printf("[UserRepository] FindByEmail database error: %v", err)
        return nil, errors.New("database query failed")
    }
    return &user, nil
}
