// Package main provides taskgatectl, the CLI for the TaskGate server.
//
// TaskGate is a project and task management backend built around a
// per-project, per-operation authorization engine. Every API operation is
// declared in an operation catalog, and each project membership carries an
// explicit allow/deny rule for every cataloged operation.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/authz: Authorization engine (membership + rule evaluation)
//   - pkg/catalog: Declared operation catalog and database sync
//   - pkg/provision: Membership provisioning (owner/joiner rule matrices)
//   - pkg/invite: Invite token issuance and verification
//   - pkg/idempotency: Request idempotency guard
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/audit: Audit logging
//   - pkg/config: Configuration management
//
// # Quick Start
//
// The server is run via the taskgatectl CLI:
//
//	# Run database migrations
//	taskgatectl db migrate
//
//	# Sync the operation catalog
//	taskgatectl catalog sync
//
//	# Create a user
//	taskgatectl user create alice@example.com "Alice" --password secret
//
//	# Start the server
//	taskgatectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - TASKGATE_AUTH_TOKEN_SECRET: HMAC secret for access tokens
//   - TASKGATE_INVITE_TOKEN_SECRET: HMAC secret for invite tokens
//   - TASKGATE_AUDIT_ENABLED: Enable RFC 5424 audit logging
//   - AUDIT_DATABASE_URL: Optional separate database for audit messages
//   - TASKGATE_LOG_LEVEL: Log level (debug, info, warn, error)
//   - PORT: Server port (default: 8000)
package main
