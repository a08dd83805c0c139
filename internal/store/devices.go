// ABOUTME: Device and digital signature store operations.
// ABOUTME: Both are user-owned records listed on the console's user detail screens.

package store

import (
	"database/sql"
	"fmt"
)

type Device struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	Name            string `json:"name"`
	IP              string `json:"ip"`
	OperatingSystem string `json:"operating_system"`
}

type DigitalSignature struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	ImageURL string `json:"image_url"`
}

func (s *Store) CreateDevice(d *Device) error {
	res, err := s.db.Exec(
		"INSERT INTO devices (user_id, name, ip, operating_system) VALUES (?, ?, ?, ?)",
		d.UserID, d.Name, d.IP, d.OperatingSystem,
	)
	if err != nil {
		return err
	}
	d.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetDevice(id int64) (*Device, error) {
	d := &Device{}
	err := s.db.QueryRow(
		"SELECT id, user_id, name, COALESCE(ip, ''), COALESCE(operating_system, '') FROM devices WHERE id = ?",
		id,
	).Scan(&d.ID, &d.UserID, &d.Name, &d.IP, &d.OperatingSystem)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("device %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) ListDevices(userID int64) ([]*Device, error) {
	query := "SELECT id, user_id, name, COALESCE(ip, ''), COALESCE(operating_system, '') FROM devices"
	args := []any{}
	if userID > 0 {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []*Device
	for rows.Next() {
		d := &Device{}
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.IP, &d.OperatingSystem); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (s *Store) UpdateDevice(d *Device) error {
	res, err := s.db.Exec(
		"UPDATE devices SET user_id = ?, name = ?, ip = ?, operating_system = ? WHERE id = ?",
		d.UserID, d.Name, d.IP, d.OperatingSystem, d.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "device", d.ID)
}

func (s *Store) DeleteDevice(id int64) error {
	res, err := s.db.Exec("DELETE FROM devices WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "device", id)
}

func (s *Store) CreateDigitalSignature(d *DigitalSignature) error {
	res, err := s.db.Exec(
		"INSERT INTO digital_signatures (user_id, image_url) VALUES (?, ?)",
		d.UserID, d.ImageURL,
	)
	if err != nil {
		return err
	}
	d.ID, err = res.LastInsertId()
	return err
}

func (s *Store) GetDigitalSignature(id int64) (*DigitalSignature, error) {
	d := &DigitalSignature{}
	err := s.db.QueryRow(
		"SELECT id, user_id, image_url FROM digital_signatures WHERE id = ?",
		id,
	).Scan(&d.ID, &d.UserID, &d.ImageURL)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("digital signature %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) ListDigitalSignatures(userID int64) ([]*DigitalSignature, error) {
	query := "SELECT id, user_id, image_url FROM digital_signatures"
	args := []any{}
	if userID > 0 {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sigs []*DigitalSignature
	for rows.Next() {
		d := &DigitalSignature{}
		if err := rows.Scan(&d.ID, &d.UserID, &d.ImageURL); err != nil {
			return nil, err
		}
		sigs = append(sigs, d)
	}
	return sigs, rows.Err()
}

func (s *Store) UpdateDigitalSignature(d *DigitalSignature) error {
	res, err := s.db.Exec(
		"UPDATE digital_signatures SET user_id = ?, image_url = ? WHERE id = ?",
		d.UserID, d.ImageURL, d.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, "digital signature", d.ID)
}

func (s *Store) DeleteDigitalSignature(id int64) error {
	res, err := s.db.Exec("DELETE FROM digital_signatures WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "digital signature", id)
}
