package dashboard

type StatsResponse struct {
	OpenPunches        int64  `json:"open_punches"`
	PendingCorrections int64  `json:"pending_corrections"`
	AutoClosedToday    int64  `json:"auto_closed_today"`
	ActiveEmployees    int64  `json:"active_employees"`
	UpdatedAt          string `json:"updated_at"`
}
