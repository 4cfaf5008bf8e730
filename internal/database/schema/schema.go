package schema

// SchemaSQL contains the full database schema initialization script. Kept in
// sync with the goose migrations under migrations/; used by the setup tooling
// to bootstrap a fresh database in one shot.
const SchemaSQL = `
-- Accounts are single-row documents: scalar columns carry everything the
-- conditional updates arbitrate on, JSONB columns carry the nested state that
-- is only ever rewritten whole inside a row-locked transaction.
CREATE TABLE IF NOT EXISTS accounts (
    account_id         TEXT PRIMARY KEY,
    username           VARCHAR(50) UNIQUE NOT NULL,
    balance            INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
    stolen_flies       INTEGER NOT NULL DEFAULT 0 CHECK (stolen_flies >= 0),
    hunger_ms          BIGINT NOT NULL DEFAULT 0,
    last_hunger_update TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    inventory          JSONB NOT NULL DEFAULT '{}',
    equipped           JSONB NOT NULL DEFAULT '{}',
    unseen_items       JSONB NOT NULL DEFAULT '[]',
    daily_stats        JSONB NOT NULL DEFAULT '{}',
    calendar_state     JSONB NOT NULL DEFAULT '{}',
    notification_prefs JSONB NOT NULL DEFAULT '{}',
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Partial index for the reminder sweep: only enabled accounts with at least
-- one registered device token are ever swept.
CREATE INDEX IF NOT EXISTS idx_accounts_notifiable
    ON accounts ((notification_prefs->>'enabled'))
    WHERE notification_prefs->>'enabled' = 'true'
      AND jsonb_array_length(notification_prefs->'device_tokens') > 0;
`
