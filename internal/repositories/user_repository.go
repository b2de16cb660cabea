package repositories

import (
	"database/sql"
	"log"

	"partnerleads/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	const query = `
		INSERT INTO users (name, email, password_hash, role_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`
	return r.db.QueryRow(query, u.Name, u.Email, u.PasswordHash, u.RoleID).Scan(&u.ID)
}

func (r *UserRepository) GetByID(id int) (*models.User, error) {
	const query = `SELECT id, name, email, password_hash, role_id FROM users WHERE id=$1`
	u := &models.User{}
	err := r.db.QueryRow(query, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	const query = `SELECT id, name, email, password_hash, role_id FROM users WHERE LOWER(email)=LOWER($1)`
	u := &models.User{}
	err := r.db.QueryRow(query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID)
	if err != nil {
		return nil, err
	}
	return u, nil
}
