// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	createLocalSchema = `
		CREATE TABLE IF NOT EXISTS mirror (
			entity_type    TEXT      NOT NULL,
			id             TEXT      NOT NULL,
			server_version INTEGER   NOT NULL,
			updated_at     TIMESTAMP NOT NULL,
			deleted_at     TIMESTAMP,
			payload        TEXT,
			PRIMARY KEY (entity_type, id)
		);

		CREATE TABLE IF NOT EXISTS pending_read_marks (
			id                TEXT    NOT NULL PRIMARY KEY,
			is_read           INTEGER NOT NULL,
			last_seen_version INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sync_state (
			key   TEXT NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);`

	upsertMirrorEnvelope = `
		INSERT INTO mirror (
			entity_type,
			id,
			server_version,
			updated_at,
			deleted_at,
			payload
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (entity_type, id) DO UPDATE SET
			server_version = excluded.server_version,
			updated_at     = excluded.updated_at,
			deleted_at     = excluded.deleted_at,
			payload        = excluded.payload;`

	getMirrorEnvelope = `
		SELECT
			entity_type,
			id,
			server_version,
			updated_at,
			deleted_at,
			payload
		FROM mirror
		WHERE entity_type = $1 AND id = $2;`

	listMirrorEnvelopes = `
		SELECT
			entity_type,
			id,
			server_version,
			updated_at,
			deleted_at,
			payload
		FROM mirror
		WHERE entity_type = $1
		ORDER BY server_version, id;`

	getSyncStateValue = `SELECT value FROM sync_state WHERE key = $1;`

	setSyncStateValue = `
		INSERT INTO sync_state (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	upsertPendingReadMark = `
		INSERT INTO pending_read_marks (id, is_read, last_seen_version)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			is_read           = excluded.is_read,
			last_seen_version = excluded.last_seen_version;`

	listPendingReadMarks = `
		SELECT id, is_read, last_seen_version
		FROM pending_read_marks
		ORDER BY id;`

	deletePendingReadMark = `DELETE FROM pending_read_marks WHERE id = $1;`

	markMirrorSummaryRead = `
		UPDATE mirror
		SET payload = json_set(payload, '$.is_read', json($3))
		WHERE entity_type = $1 AND id = $2 AND deleted_at IS NULL;`
)
