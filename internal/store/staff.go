package store

import (
	"database/sql"
	"fmt"

	"github.com/kekirawacc/kccweb/internal/model"
)

type StaffStore struct {
	db *sql.DB
}

func NewStaffStore(db *sql.DB) *StaffStore {
	return &StaffStore{db: db}
}

func scanStaffMember(scanner interface{ Scan(...any) error }) (*model.StaffMember, error) {
	var m model.StaffMember
	err := scanner.Scan(&m.ID, &m.Name, &m.PhotoURL, &m.RoleTitle, &m.Department,
		&m.IsInAdminPage, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const staffCols = `id, name, photo_url, role_title, department, is_in_admin_page, sort_order, created_at, updated_at`

func (s *StaffStore) Create(m *model.StaffMember) (*model.StaffMember, error) {
	result, err := s.db.Exec(
		`INSERT INTO staff_members (name, photo_url, role_title, department, is_in_admin_page, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Name, m.PhotoURL, m.RoleTitle, m.Department, m.IsInAdminPage, m.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert staff member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *StaffStore) GetByID(id int64) (*model.StaffMember, error) {
	row := s.db.QueryRow(`SELECT `+staffCols+` FROM staff_members WHERE id = ?`, id)
	m, err := scanStaffMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get staff member: %w", err)
	}
	return m, nil
}

func (s *StaffStore) List() ([]model.StaffMember, error) {
	rows, err := s.db.Query(`SELECT ` + staffCols + ` FROM staff_members ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list staff members: %w", err)
	}
	defer rows.Close()

	var members []model.StaffMember
	for rows.Next() {
		m, err := scanStaffMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *StaffStore) Update(id int64, m *model.StaffMember) (*model.StaffMember, error) {
	_, err := s.db.Exec(
		`UPDATE staff_members SET name = ?, photo_url = ?, role_title = ?, department = ?,
		 is_in_admin_page = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		m.Name, m.PhotoURL, m.RoleTitle, m.Department, m.IsInAdminPage, m.SortOrder, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update staff member: %w", err)
	}
	return s.GetByID(id)
}

func (s *StaffStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM staff_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete staff member: %w", err)
	}
	return nil
}
