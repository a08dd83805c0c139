// ABOUTME: Request log storage operations.
// ABOUTME: Handles inserting and querying HTTP request logs for the activity screen.

package store

import "time"

// RequestLog represents an HTTP request log entry
type RequestLog struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Resource   string    `json:"resource"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	DurationMs int       `json:"duration_ms"`
	UserID     string    `json:"user_id"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	Error      string    `json:"error,omitempty"`
}

// LogRequest inserts a request log entry
func (s *Store) LogRequest(log *RequestLog) error {
	_, err := s.db.Exec(`
		INSERT INTO request_logs (resource, method, path, status_code, duration_ms, user_id, ip_address, user_agent, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.Resource, log.Method, log.Path, log.StatusCode, log.DurationMs, log.UserID, log.IPAddress, log.UserAgent, log.Error)
	return err
}

// RequestLogQuery represents filters for request logs
type RequestLogQuery struct {
	Limit      int
	Offset     int
	Resource   string
	Method     string
	PathPrefix string
	StatusCode int
	UserID     string
}

// RequestLogStats represents aggregate statistics
type RequestLogStats struct {
	TotalRequests   int `json:"total_requests"`
	TodayRequests   int `json:"today_requests"`
	ErrorRequests   int `json:"error_requests"`
	AvgDurationMs   int `json:"avg_duration_ms"`
	UniqueEndpoints int `json:"unique_endpoints"`
	UniqueUsers     int `json:"unique_users"`
}

// GetRequestLogs retrieves request logs with filtering
func (s *Store) GetRequestLogs(q *RequestLogQuery) ([]*RequestLog, error) {
	query := `SELECT id, timestamp, COALESCE(resource, ''), method, path, status_code, duration_ms,
	          COALESCE(user_id, ''), COALESCE(ip_address, ''), COALESCE(user_agent, ''), COALESCE(error, '')
	          FROM request_logs WHERE 1=1`
	args := []any{}

	if q.Resource != "" {
		query += " AND resource = ?"
		args = append(args, q.Resource)
	}
	if q.Method != "" {
		query += " AND method = ?"
		args = append(args, q.Method)
	}
	if q.PathPrefix != "" {
		query += " AND path LIKE ? ESCAPE '\\'"
		args = append(args, escapeSQLLike(q.PathPrefix)+"%")
	}
	if q.StatusCode > 0 {
		query += " AND status_code = ?"
		args = append(args, q.StatusCode)
	}
	if q.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, q.UserID)
	}

	query += " ORDER BY timestamp DESC LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*RequestLog
	for rows.Next() {
		log := &RequestLog{}
		var timestamp string
		if err := rows.Scan(&log.ID, &timestamp, &log.Resource, &log.Method, &log.Path, &log.StatusCode,
			&log.DurationMs, &log.UserID, &log.IPAddress, &log.UserAgent, &log.Error); err != nil {
			return nil, err
		}
		log.Timestamp, _ = time.Parse("2006-01-02 15:04:05", timestamp)
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// GetRequestLogStats returns aggregate statistics
func (s *Store) GetRequestLogStats() (*RequestLogStats, error) {
	stats := &RequestLogStats{}

	s.db.QueryRow("SELECT COUNT(*) FROM request_logs").Scan(&stats.TotalRequests)

	today := time.Now().Format("2006-01-02")
	s.db.QueryRow("SELECT COUNT(*) FROM request_logs WHERE date(timestamp) = ?", today).Scan(&stats.TodayRequests)

	s.db.QueryRow("SELECT COUNT(*) FROM request_logs WHERE status_code >= 400").Scan(&stats.ErrorRequests)
	s.db.QueryRow("SELECT COALESCE(AVG(duration_ms), 0) FROM request_logs").Scan(&stats.AvgDurationMs)
	s.db.QueryRow("SELECT COUNT(DISTINCT path) FROM request_logs").Scan(&stats.UniqueEndpoints)
	s.db.QueryRow("SELECT COUNT(DISTINCT user_id) FROM request_logs WHERE user_id != ''").Scan(&stats.UniqueUsers)

	return stats, nil
}

// GetTopEndpoints returns the most frequently requested endpoints
func (s *Store) GetTopEndpoints(limit int) ([]map[string]any, error) {
	rows, err := s.db.Query(`
		SELECT path, COUNT(*) as count, AVG(duration_ms) as avg_ms
		FROM request_logs
		GROUP BY path
		ORDER BY count DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var endpoints []map[string]any
	for rows.Next() {
		var path string
		var count int
		var avgMs float64
		if err := rows.Scan(&path, &count, &avgMs); err != nil {
			return nil, err
		}
		endpoints = append(endpoints, map[string]any{
			"path":   path,
			"count":  count,
			"avg_ms": int(avgMs),
		})
	}
	return endpoints, rows.Err()
}
