package storage

const schemaSQL = `
CREATE TABLE IF NOT EXISTS meta (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS weeks (
    start_date           TEXT PRIMARY KEY,
    budget               INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS purchases (
    id                   TEXT PRIMARY KEY,
    week_start           TEXT NOT NULL REFERENCES weeks(start_date) ON DELETE CASCADE,
    name                 TEXT NOT NULL,
    amount               INTEGER NOT NULL,
    purchase_date        TEXT NOT NULL,
    position             INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_purchases_week ON purchases(week_start, position);
`
