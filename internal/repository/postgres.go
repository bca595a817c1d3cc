package repository

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"

	"todo-webapp/internal/models"
)

// Postgres stores todos in the `todo` table. Every operation checks out one
// connection from the pool and hands it back when it returns.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Open connects to dsn and bounds the pool to maxConns open connections.
func Open(dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns)
	}
	return db, nil
}

func (p *Postgres) List(ctx context.Context) ([]models.Todo, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, storageErr("acquire connection", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, "SELECT id, title, is_completed FROM todo")
	if err != nil {
		return nil, storageErr("list todos", err)
	}
	defer rows.Close()

	results := make([]models.Todo, 0)
	for rows.Next() {
		todo := models.Todo{}
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.IsCompleted); err != nil {
			return nil, storageErr("list todos", err)
		}
		results = append(results, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list todos", err)
	}

	return results, nil
}

func (p *Postgres) Get(ctx context.Context, id int) (*models.Todo, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, storageErr("acquire connection", err)
	}
	defer conn.Close()

	row := conn.QueryRowContext(ctx, "SELECT id, title, is_completed FROM todo WHERE id = $1", id)

	todo := models.Todo{}
	err = row.Scan(&todo.ID, &todo.Title, &todo.IsCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get todo", err)
	}

	return &todo, nil
}

func (p *Postgres) Create(ctx context.Context, title string) (models.Todo, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return models.Todo{}, storageErr("acquire connection", err)
	}
	defer conn.Close()

	row := conn.QueryRowContext(ctx, `INSERT INTO
			todo(title)
			VALUES($1)
			RETURNING id, title, is_completed`,
		title)

	todo := models.Todo{}
	if err := row.Scan(&todo.ID, &todo.Title, &todo.IsCompleted); err != nil {
		return models.Todo{}, storageErr("create todo", err)
	}

	return todo, nil
}

func (p *Postgres) Update(ctx context.Context, id int, update models.UpdateTodo) (*models.Todo, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, storageErr("acquire connection", err)
	}
	defer conn.Close()

	// NULL parameters keep the current column value.
	var title sql.NullString
	if update.Title != nil {
		title = sql.NullString{String: *update.Title, Valid: true}
	}
	var isCompleted sql.NullBool
	if update.IsCompleted != nil {
		isCompleted = sql.NullBool{Bool: *update.IsCompleted, Valid: true}
	}

	row := conn.QueryRowContext(ctx, `UPDATE todo
			SET title = COALESCE($2::text, title), is_completed = COALESCE($3::boolean, is_completed)
			WHERE id = $1
			RETURNING id, title, is_completed`,
		id, title, isCompleted)

	todo := models.Todo{}
	err = row.Scan(&todo.ID, &todo.Title, &todo.IsCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("update todo", err)
	}

	return &todo, nil
}

func (p *Postgres) Delete(ctx context.Context, id int) (bool, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return false, storageErr("acquire connection", err)
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, "DELETE FROM todo WHERE id = $1", id)
	if err != nil {
		return false, storageErr("delete todo", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, storageErr("delete todo", err)
	}

	return rowsAffected == 1, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}
