// Package model defines the database models for TaskGate.
//
// This package contains GORM models that map to the TaskGate PostgreSQL
// schema. The schema is created and versioned by the migrations in
// db/migrations.
//
// # Core Models
//
//   - User: Accounts that authenticate against the API
//   - Project: A unit of collaboration; every permission is scoped to one
//   - Operation: A protectable API operation, identified by (controller, action)
//   - UsersProjects: Membership of one user in one project
//   - Rule: One allow/deny bit for one membership on one operation
//   - Task: Work items that belong to a project
//   - TaskStatus: The workflow states a task can be in
//
// # Database Schema
//
// The permission matrix lives in three tables:
//
//   - operations: The operation catalog, unique on (controller, action)
//   - users_projects: Memberships, unique on (user_id, project_id)
//   - rules: Permission rows, unique on (users_projects_id, operation_id),
//     deleted in cascade with their membership
package model
