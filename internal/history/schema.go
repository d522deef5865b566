package history

const schemaVersion = 1

const schema = `
-- Selection attempts, one row per AttemptSelect
CREATE TABLE IF NOT EXISTS attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    menu_id TEXT NOT NULL,
    item_key TEXT NOT NULL,
    prevented INTEGER NOT NULL DEFAULT 0,
    attempted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_attempts_menu ON attempts(menu_id);
CREATE INDEX IF NOT EXISTS idx_attempts_time ON attempts(attempted_at);

-- Schema info
CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
