package db

const schema = `
-- Cover images, synthetic or loaded from disk
CREATE TABLE IF NOT EXISTS covers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    source TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    UNIQUE(name, width, height)
);

-- One RS report per cover, channel, strategy and embedding rate
CREATE TABLE IF NOT EXISTS results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    cover_id INTEGER NOT NULL,
    channel TEXT NOT NULL,
    strategy TEXT NOT NULL,

    target_rate REAL NOT NULL,
    payload_bytes INTEGER NOT NULL,
    embedded_rate REAL NOT NULL,
    recovered BOOLEAN NOT NULL,

    groups_total INTEGER NOT NULL,
    r_m REAL NOT NULL,
    s_m REAL NOT NULL,
    r_neg_m REAL NOT NULL,
    s_neg_m REAL NOT NULL,
    smoothness REAL NOT NULL,
    verdict TEXT NOT NULL,
    estimated_rate REAL,

    FOREIGN KEY (cover_id) REFERENCES covers(id) ON DELETE CASCADE,
    UNIQUE(cover_id, channel, strategy, target_rate)
);

CREATE INDEX IF NOT EXISTS idx_results_rate ON results(target_rate);
CREATE INDEX IF NOT EXISTS idx_results_verdict ON results(verdict);

CREATE VIEW IF NOT EXISTS results_detailed AS
SELECT
    r.id,
    c.name as cover_name,
    c.source as cover_source,
    c.width,
    c.height,
    r.channel,
    r.strategy,
    r.target_rate,
    r.payload_bytes,
    r.embedded_rate,
    r.recovered,
    r.groups_total,
    r.r_m,
    r.s_m,
    r.r_neg_m,
    r.s_neg_m,
    r.smoothness,
    r.verdict,
    r.estimated_rate
FROM results r
JOIN covers c ON r.cover_id = c.id;
`
