package postgre

const (
	// Schema creates the table on first use.
	Schema = `CREATE TABLE IF NOT EXISTS report_states (
	key        TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	insertStateQuery = `INSERT INTO report_states (key, state) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`
	selectStateQuery = `SELECT state FROM report_states WHERE key = $1`
	deleteStateQuery = `DELETE FROM report_states WHERE key LIKE $1 || '%'`
)
