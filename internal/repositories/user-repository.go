package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"school-inventory/internal/entities"
	apperrors "school-inventory/pkg/errors"
)

const userTable = "users"

var userSelectFields = []string{"id", "name", "username", "password", "role", "created_at"}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(&user.ID, &user.Name, &user.Username, &user.Password, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	query, args, err := sq.Select(userSelectFields...).From(userTable).OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) findBy(ctx context.Context, where sq.Eq) (*entities.User, error) {
	query, args, err := sq.Select(userSelectFields...).From(userTable).Where(where).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findBy(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findBy(ctx, sq.Eq{"username": username})
}

// CreateUser ожидает уже захешированный пароль.
func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query, args, err := sq.Insert(userTable).
		Columns("name", "username", "password", "role").
		Values(user.Name, user.Username, user.Password, string(user.Role)).
		Suffix("RETURNING id, name, username, password, role, created_at").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("пользователь %q уже существует", user.Username)
		}
		r.logger.Error("ошибка создания пользователя", zap.String("username", user.Username), zap.Error(err))
		return nil, err
	}
	return created, nil
}
