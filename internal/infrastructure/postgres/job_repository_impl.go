package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// jobSelect joins the employer summary and counts applications per job.
const jobSelect = `
	SELECT j.id, j.title, j.description, j.company, j.salary, j.location, j.type, j.category,
		j.experience, j.requirements, j.benefits, j.is_active, j.employer_id, j.created_at, j.updated_at,
		e.id, e.name, e.email, e.location, e.avatar_url, e.bio, e.phone, e.resume_url,
		(SELECT count(*) FROM applications a WHERE a.job_id = j.id)
	FROM jobs j
	JOIN users e ON e.id = j.employer_id`

func scanJob(row pgx.Row) (*entity.Job, error) {
	j := &entity.Job{}
	emp := &entity.UserSummary{}
	var typ string
	if err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Company, &j.Salary, &j.Location, &typ, &j.Category,
		&j.Experience, &j.Requirements, &j.Benefits, &j.IsActive, &j.EmployerID, &j.CreatedAt, &j.UpdatedAt,
		&emp.ID, &emp.Name, &emp.Email, &emp.Location, &emp.Avatar, &emp.Bio, &emp.Phone, &emp.Resume,
		&j.Applications,
	); err != nil {
		return nil, err
	}
	j.Type = entity.JobType(typ)
	j.Employer = emp
	return j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *entity.Job) error {
	if !validID(j.EmployerID) {
		return translate(pgx.ErrNoRows, "employer")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO jobs (title, description, company, salary, location, type, category, experience,
			requirements, benefits, is_active, employer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, j.Title, j.Description, j.Company, j.Salary, j.Location, string(j.Type), j.Category, j.Experience,
		j.Requirements, j.Benefits, j.IsActive, j.EmployerID).Scan(&id)
	if err != nil {
		return translate(err, "employer")
	}
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*j = *created
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	if !validID(id) {
		return nil, translate(pgx.ErrNoRows, "job")
	}
	j, err := scanJob(r.pool.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if err != nil {
		return nil, translate(err, "job")
	}
	return j, nil
}

func (r *JobRepository) GetOwnedBy(ctx context.Context, id, employerID string) (*entity.Job, error) {
	if !validID(id) || !validID(employerID) {
		return nil, translate(pgx.ErrNoRows, "job")
	}
	j, err := scanJob(r.pool.QueryRow(ctx, jobSelect+` WHERE j.id = $1 AND j.employer_id = $2`, id, employerID))
	if err != nil {
		return nil, translate(err, "job")
	}
	return j, nil
}

func (r *JobRepository) Update(ctx context.Context, j *entity.Job) error {
	if !validID(j.ID) {
		return translate(pgx.ErrNoRows, "job")
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET title = $1, description = $2, company = $3, salary = $4, location = $5, type = $6,
			category = $7, experience = $8, requirements = $9, benefits = $10, is_active = $11,
			updated_at = now()
		WHERE id = $12
	`, j.Title, j.Description, j.Company, j.Salary, j.Location, string(j.Type), j.Category, j.Experience,
		j.Requirements, j.Benefits, j.IsActive, j.ID)
	if err != nil {
		return translate(err, "job")
	}
	if res.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "job")
	}
	updated, err := r.GetByID(ctx, j.ID)
	if err != nil {
		return err
	}
	*j = *updated
	return nil
}

func (r *JobRepository) SetActive(ctx context.Context, id string, active bool) error {
	if !validID(id) {
		return translate(pgx.ErrNoRows, "job")
	}
	res, err := r.pool.Exec(ctx, `UPDATE jobs SET is_active = $1, updated_at = now() WHERE id = $2`, active, id)
	if err != nil {
		return translate(err, "job")
	}
	if res.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "job")
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return translate(pgx.ErrNoRows, "job")
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return translate(err, "job")
	}
	if res.RowsAffected() == 0 {
		return translate(pgx.ErrNoRows, "job")
	}
	return nil
}

func jobWhere(f repository.JobFilter) *where {
	w := &where{}
	if f.EmployerID != "" {
		if !validID(f.EmployerID) {
			// matches nothing
			w.clauses = append(w.clauses, "FALSE")
		} else {
			w.add("j.employer_id = $%[1]d", f.EmployerID)
		}
	}
	if f.Active != nil {
		w.add("j.is_active = $%[1]d", *f.Active)
	}
	if f.Search != "" {
		w.add("(j.title ILIKE $%[1]d OR j.description ILIKE $%[1]d OR j.company ILIKE $%[1]d OR j.requirements ILIKE $%[1]d)",
			contains(f.Search))
	}
	if f.Location != "" {
		w.add("j.location ILIKE $%[1]d", contains(f.Location))
	}
	if f.Type != "" {
		w.add("j.type = $%[1]d", string(f.Type))
	}
	if f.Category != "" {
		w.add("j.category ILIKE $%[1]d", contains(f.Category))
	}
	if f.Experience != "" {
		w.add("j.experience ILIKE $%[1]d", contains(f.Experience))
	}
	return w
}

func (r *JobRepository) List(ctx context.Context, f repository.JobFilter) ([]entity.Job, int, error) {
	w := jobWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM jobs j`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "job")
	}

	tail, args := w.page(f.Page)
	rows, err := r.pool.Query(ctx, jobSelect+w.String()+` ORDER BY j.created_at DESC`+tail, args...)
	if err != nil {
		return nil, 0, translate(err, "job")
	}
	defer rows.Close()

	out := make([]entity.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, translate(err, "job")
		}
		out = append(out, *j)
	}
	return out, total, translate(rows.Err(), "job")
}

func (r *JobRepository) Count(ctx context.Context, active *bool) (int, error) {
	w := jobWhere(repository.JobFilter{Active: active})
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM jobs j`+w.String(), w.args...).Scan(&n)
	return n, translate(err, "job")
}

func (r *JobRepository) CountByType(ctx context.Context) ([]entity.TypeCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT type, count(*) FROM jobs GROUP BY type ORDER BY type`)
	if err != nil {
		return nil, translate(err, "job")
	}
	defer rows.Close()

	out := make([]entity.TypeCount, 0)
	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, translate(err, "job")
		}
		out = append(out, entity.TypeCount{Type: entity.JobType(typ), Count: n})
	}
	return out, translate(rows.Err(), "job")
}

var _ repository.JobRepository = (*JobRepository)(nil)
