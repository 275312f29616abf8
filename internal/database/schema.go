package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied idempotently at startup. Dictionary entries keep their
// insertion order through the serial id.
const schema = `
CREATE TABLE IF NOT EXISTS role_permissions (
    id BIGSERIAL PRIMARY KEY,
    role TEXT NOT NULL,
    permission TEXT NOT NULL,
    UNIQUE (role, permission)
);

CREATE TABLE IF NOT EXISTS ticket_type (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ticket (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    type_id TEXT REFERENCES ticket_type(id),
    state TEXT NOT NULL DEFAULT 'NEW',
    created_by TEXT NOT NULL,
    assignee TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS message (
    id TEXT PRIMARY KEY,
    ticket_id TEXT NOT NULL REFERENCES ticket(id),
    content TEXT NOT NULL,
    type TEXT NOT NULL,
    created_by TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_message_ticket ON message (ticket_id, created_at);

CREATE TABLE IF NOT EXISTS metadata_type (
    name TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS metadata_dict (
    id BIGSERIAL PRIMARY KEY,
    metadata_type TEXT NOT NULL REFERENCES metadata_type(name),
    value TEXT NOT NULL,
    UNIQUE (metadata_type, value)
);

CREATE TABLE IF NOT EXISTS metadata_value (
    id TEXT PRIMARY KEY,
    ticket_id TEXT NOT NULL REFERENCES ticket(id),
    metadata_type TEXT NOT NULL REFERENCES metadata_type(name),
    value TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (ticket_id, metadata_type)
);

CREATE TABLE IF NOT EXISTS ticket_type_metadata_type (
    ticket_type_id TEXT NOT NULL REFERENCES ticket_type(id),
    metadata_type TEXT NOT NULL REFERENCES metadata_type(name),
    PRIMARY KEY (ticket_type_id, metadata_type)
);

CREATE TABLE IF NOT EXISTS user_profile (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    name TEXT,
    location TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS team (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS team_member (
    team_id TEXT NOT NULL REFERENCES team(id),
    user_id TEXT NOT NULL REFERENCES user_profile(id),
    PRIMARY KEY (team_id, user_id)
);

CREATE TABLE IF NOT EXISTS customer_org (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customer_user (
    user_id TEXT PRIMARY KEY,
    name TEXT,
    org_id TEXT REFERENCES customer_org(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// seed installs the default permission grants and the priority dictionary.
// Every statement is idempotent, so reapplying on restart is safe.
const seed = `
INSERT INTO metadata_type (name, kind) VALUES ('PRIORITY', 'DICT')
ON CONFLICT (name) DO NOTHING;

INSERT INTO metadata_dict (metadata_type, value)
SELECT 'PRIORITY', v FROM unnest(ARRAY['LOW','NORMAL','HIGH','URGENT']) AS v
ON CONFLICT (metadata_type, value) DO NOTHING;

INSERT INTO role_permissions (role, permission) VALUES
    ('customer', 'ticket.view'),
    ('customer', 'ticket.list.view'),
    ('customer', 'ticket.list.create'),
    ('customer', 'ticket.chat.view'),
    ('customer', 'ticket.chat.reply'),
    ('customer', 'ticket.state.view'),
    ('customer', 'ticket.info.view'),
    ('employee', 'ticket.view'),
    ('employee', 'ticket.list.view'),
    ('employee', 'ticket.list.search'),
    ('employee', 'ticket.chat.view'),
    ('employee', 'ticket.chat.reply'),
    ('employee', 'ticket.chat.internal'),
    ('employee', 'ticket.assignee.view'),
    ('employee', 'ticket.assignee.edit'),
    ('employee', 'ticket.info.view'),
    ('employee', 'ticket.info.edit'),
    ('employee', 'ticket.metadata.view'),
    ('employee', 'ticket.metadata.edit'),
    ('employee', 'ticket.customercontext.view'),
    ('employee', 'ticket.state.view'),
    ('employee', 'ticket.state.edit'),
    ('employee', 'ticket.details'),
    ('employee', 'ticket.team.view'),
    ('employee', 'customer.view'),
    ('employee', 'customer.details.view'),
    ('employee', 'org.view'),
    ('employee', 'team.view')
ON CONFLICT (role, permission) DO NOTHING;

INSERT INTO role_permissions (role, permission)
SELECT 'admin', p FROM unnest(ARRAY[
    'ticket.view','ticket.list.view','ticket.list.search','ticket.list.create',
    'ticket.chat.view','ticket.chat.reply','ticket.chat.internal',
    'ticket.assignee.view','ticket.assignee.edit',
    'ticket.info.view','ticket.info.edit',
    'ticket.metadata.view','ticket.metadata.edit',
    'ticket.customercontext.view','ticket.state.view','ticket.state.edit',
    'ticket.details','ticket.team.view',
    'customer.view','customer.details.view','customer.details.edit',
    'customer.context.view','org.view','org.details.view','team.view',
    'admin.view','admin.tickettype.view','admin.tickettype.edit',
    'admin.metadata.view','admin.metadata.edit',
    'admin.role.view','admin.role.edit',
    'admin.users.view','admin.users.edit',
    'admin.teams.view','admin.teams.edit'
]) AS p
ON CONFLICT (role, permission) DO NOTHING;
`

// Migrate applies the schema and the default seed.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, seed); err != nil {
		return fmt.Errorf("applying seed: %w", err)
	}
	return nil
}
