package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id            TEXT PRIMARY KEY,
    started_at    TEXT NOT NULL,
    ended_at      TEXT NOT NULL,
    budget_cents  INTEGER NOT NULL,
    total_cents   INTEGER NOT NULL,
    currency      TEXT NOT NULL DEFAULT 'UGX',
    txn_count     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id                TEXT PRIMARY KEY,
    session_id        TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    seq               INTEGER NOT NULL,
    description       TEXT NOT NULL,
    value_cents       INTEGER NOT NULL,
    cumulative_cents  INTEGER NOT NULL,
    at                TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
CREATE INDEX IF NOT EXISTS idx_transactions_session ON transactions(session_id, seq);
`
