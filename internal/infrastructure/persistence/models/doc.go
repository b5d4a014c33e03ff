// Package models contains the GORM persistence models for the application
// tables. Models are kept apart from the domain shapes so the domain layer
// stays free of ORM tags.
//
// Every model maps one table declared in the schema registry and carries an
// explicit column tag on each field. Models declare no association fields;
// relations are resolved by repository methods.
//
// Structure:
//   - base.go: shared timestamp columns and helpers
//   - lending.go: clients, advisers, credits, credit_payments
//   - identity.go: users, teams, team_members, activity_logs, invitations
package models
