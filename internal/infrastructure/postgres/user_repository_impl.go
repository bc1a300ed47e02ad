package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `u.id, u.email, u.password_hash, u.name, u.role, u.bio, u.phone, u.location,
	u.avatar_url, u.resume_url, u.is_verified, u.verification_token, u.verification_token_expires,
	u.created_at, u.updated_at`

func scanUser(row pgx.Row, extra ...any) (*entity.User, error) {
	u := &entity.User{}
	var role string
	dest := append([]any{
		&u.ID, &u.Email, &u.Password, &u.Name, &role, &u.Bio, &u.Phone, &u.Location,
		&u.AvatarURL, &u.ResumeURL, &u.IsVerified, &u.VerificationToken, &u.VerificationTokenExpires,
		&u.CreatedAt, &u.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, bio, phone, location, avatar_url, resume_url,
			is_verified, verification_token, verification_token_expires)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, string(u.Role), u.Bio, u.Phone, u.Location, u.AvatarURL, u.ResumeURL,
		u.IsVerified, u.VerificationToken, u.VerificationTokenExpires)

	return translate(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt), "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, translate(pgx.ErrNoRows, "user")
	}
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`,
		entity.NormalizeEmail(email)))
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string, now time.Time) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users u
		WHERE u.verification_token = $1 AND u.verification_token_expires > $2
	`, token, now))
	if err != nil {
		return nil, translate(err, "user")
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if !validID(u.ID) {
		return translate(pgx.ErrNoRows, "user")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, role = $4, bio = $5, phone = $6, location = $7,
			avatar_url = $8, resume_url = $9, is_verified = $10, verification_token = $11,
			verification_token_expires = $12, updated_at = now()
		WHERE id = $13
		RETURNING created_at, updated_at
	`, u.Email, u.Password, u.Name, string(u.Role), u.Bio, u.Phone, u.Location, u.AvatarURL, u.ResumeURL,
		u.IsVerified, u.VerificationToken, u.VerificationTokenExpires, u.ID)

	return translate(row.Scan(&u.CreatedAt, &u.UpdatedAt), "user")
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return translate(pgx.ErrNoRows, "user")
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err, "user")
	}
	if res.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "user")
	}
	return nil
}

func userWhere(f repository.UserFilter) *where {
	w := &where{}
	if f.Role != "" {
		w.add("u.role = $%[1]d", string(f.Role))
	}
	if f.Search != "" {
		w.add("(u.name ILIKE $%[1]d OR u.email ILIKE $%[1]d OR u.location ILIKE $%[1]d)", contains(f.Search))
	}
	return w
}

func (r *UserRepository) List(ctx context.Context, f repository.UserFilter) ([]entity.UserListItem, int, error) {
	w := userWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users u`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "user")
	}

	tail, args := w.page(f.Page)
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`,
			(SELECT count(*) FROM jobs j WHERE j.employer_id = u.id),
			(SELECT count(*) FROM applications a WHERE a.seeker_id = u.id)
		FROM users u`+w.String()+`
		ORDER BY u.created_at DESC`+tail, args...)
	if err != nil {
		return nil, 0, translate(err, "user")
	}
	defer rows.Close()

	out := make([]entity.UserListItem, 0)
	for rows.Next() {
		var jobs, apps int
		u, err := scanUser(rows, &jobs, &apps)
		if err != nil {
			return nil, 0, translate(err, "user")
		}
		out = append(out, entity.UserListItem{PublicUser: u.Public(), JobsPosted: jobs, Applications: apps})
	}
	return out, total, translate(rows.Err(), "user")
}

func (r *UserRepository) Count(ctx context.Context, role entity.Role) (int, error) {
	w := userWhere(repository.UserFilter{Role: role})
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users u`+w.String(), w.args...).Scan(&n)
	return n, translate(err, "user")
}

func (r *UserRepository) Recent(ctx context.Context, n int) ([]entity.PublicUser, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, translate(err, "user")
	}
	defer rows.Close()

	out := make([]entity.PublicUser, 0, n)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translate(err, "user")
		}
		out = append(out, u.Public())
	}
	return out, translate(rows.Err(), "user")
}

var _ repository.UserRepository = (*UserRepository)(nil)
