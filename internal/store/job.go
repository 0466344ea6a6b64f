package store

import (
	"github.com/Risriddle/Librarize/internal/model"
)

func (s *Store) AddJob(job model.Job) (*model.Job, error) {
	stmt := `
    INSERT INTO jobs (file_name, title, author, status) VALUES (?, ?, ?, ?)
    RETURNING id, file_name, title, author, status, error
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var j model.Job
	if err := tx.QueryRow(stmt, job.FileName, job.Title, job.Author, job.Status).Scan(
		&j.ID, &j.FileName, &j.Title, &j.Author, &j.Status, &j.Error,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	j.Item = job.Item
	return &j, nil
}

func (s *Store) SetJobStatus(id int, status, jobErr string) error {
	stmt := `UPDATE jobs SET status = ?, error = ? WHERE id = ?`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	res, err := s.db.Exec(stmt, status, jobErr, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListJobs() ([]*model.Job, error) {
	query := `SELECT id, file_name, title, author, status, error FROM jobs ORDER BY id DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Job, 0)
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.FileName, &j.Title, &j.Author, &j.Status, &j.Error); err != nil {
			return nil, err
		}
		list = append(list, &j)
	}
	return list, rows.Err()
}
