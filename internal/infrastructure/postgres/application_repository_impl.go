package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

// applicationSelect joins the job header with its employer and the seeker.
const applicationSelect = `
	SELECT a.id, a.job_id, a.seeker_id, a.cover_letter, a.status, a.created_at, a.updated_at,
		j.id, j.title, j.company, j.location, j.type,
		e.id, e.name, e.email, e.location, e.avatar_url, e.bio, e.phone, e.resume_url,
		s.id, s.name, s.email, s.location, s.avatar_url, s.bio, s.phone, s.resume_url
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users e ON e.id = j.employer_id
	JOIN users s ON s.id = a.seeker_id`

func scanApplication(row pgx.Row) (*entity.Application, error) {
	a := &entity.Application{}
	job := &entity.JobSummary{}
	emp := &entity.UserSummary{}
	seeker := &entity.UserSummary{}
	var status, typ string
	if err := row.Scan(
		&a.ID, &a.JobID, &a.SeekerID, &a.CoverLetter, &status, &a.CreatedAt, &a.UpdatedAt,
		&job.ID, &job.Title, &job.Company, &job.Location, &typ,
		&emp.ID, &emp.Name, &emp.Email, &emp.Location, &emp.Avatar, &emp.Bio, &emp.Phone, &emp.Resume,
		&seeker.ID, &seeker.Name, &seeker.Email, &seeker.Location, &seeker.Avatar, &seeker.Bio, &seeker.Phone, &seeker.Resume,
	); err != nil {
		return nil, err
	}
	a.Status = entity.ApplicationStatus(status)
	job.Type = entity.JobType(typ)
	job.Employer = emp
	a.Job = job
	a.Seeker = seeker
	return a, nil
}

func (r *ApplicationRepository) get(ctx context.Context, id string) (*entity.Application, error) {
	a, err := scanApplication(r.pool.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, translate(err, "application")
	}
	return a, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a *entity.Application) error {
	if !validID(a.JobID) {
		return translate(pgx.ErrNoRows, "job")
	}
	if a.Status == "" {
		a.Status = entity.StatusApplied
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO applications (job_id, seeker_id, cover_letter, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, a.JobID, a.SeekerID, a.CoverLetter, string(a.Status)).Scan(&id)
	if err != nil {
		return translate(err, "job")
	}
	created, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	*a = *created
	return nil
}

func (r *ApplicationRepository) GetOwnedByEmployer(ctx context.Context, id, employerID string) (*entity.Application, error) {
	if !validID(id) || !validID(employerID) {
		return nil, translate(pgx.ErrNoRows, "application")
	}
	a, err := scanApplication(r.pool.QueryRow(ctx, applicationSelect+` WHERE a.id = $1 AND j.employer_id = $2`, id, employerID))
	if err != nil {
		return nil, translate(err, "application")
	}
	return a, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) (*entity.Application, error) {
	if !validID(id) {
		return nil, translate(pgx.ErrNoRows, "application")
	}
	res, err := r.pool.Exec(ctx, `UPDATE applications SET status = $1, updated_at = now() WHERE id = $2`, string(status), id)
	if err != nil {
		return nil, translate(err, "application")
	}
	if res.RowsAffected() == 0 {
		return nil, translate(pgx.ErrNoRows, "application")
	}
	return r.get(ctx, id)
}

func applicationWhere(f repository.ApplicationFilter) *where {
	w := &where{}
	if f.JobID != "" {
		if validID(f.JobID) {
			w.add("a.job_id = $%[1]d", f.JobID)
		} else {
			w.clauses = append(w.clauses, "FALSE")
		}
	}
	if f.SeekerID != "" {
		if validID(f.SeekerID) {
			w.add("a.seeker_id = $%[1]d", f.SeekerID)
		} else {
			w.clauses = append(w.clauses, "FALSE")
		}
	}
	if f.Status != "" {
		w.add("a.status = $%[1]d", string(f.Status))
	}
	return w
}

func (r *ApplicationRepository) List(ctx context.Context, f repository.ApplicationFilter) ([]entity.Application, int, error) {
	w := applicationWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM applications a`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "application")
	}

	tail, args := w.page(f.Page)
	rows, err := r.pool.Query(ctx, applicationSelect+w.String()+` ORDER BY a.created_at DESC`+tail, args...)
	if err != nil {
		return nil, 0, translate(err, "application")
	}
	defer rows.Close()

	out := make([]entity.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, translate(err, "application")
		}
		out = append(out, *a)
	}
	return out, total, translate(rows.Err(), "application")
}

func scanStatusCounts(rows pgx.Rows) ([]entity.StatusCount, int, error) {
	defer rows.Close()
	counts := map[entity.ApplicationStatus]int{}
	total := 0
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, 0, err
		}
		counts[entity.ApplicationStatus(status)] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	out := make([]entity.StatusCount, 0, len(counts))
	for _, st := range entity.ApplicationStatuses {
		if n := counts[st]; n > 0 {
			out = append(out, entity.StatusCount{Status: st, Count: n})
		}
	}
	return out, total, nil
}

func (r *ApplicationRepository) StatsFor(ctx context.Context, userID string) ([]entity.StatusCount, int, error) {
	if !validID(userID) {
		return []entity.StatusCount{}, 0, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT a.status, count(*)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.seeker_id = $1 OR j.employer_id = $1
		GROUP BY a.status
	`, userID)
	if err != nil {
		return nil, 0, translate(err, "application")
	}
	out, total, err := scanStatusCounts(rows)
	return out, total, translate(err, "application")
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context) ([]entity.StatusCount, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, translate(err, "application")
	}
	out, _, err := scanStatusCounts(rows)
	return out, translate(err, "application")
}

func (r *ApplicationRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM applications`).Scan(&n)
	return n, translate(err, "application")
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)
