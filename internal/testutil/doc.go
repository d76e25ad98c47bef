// Package testutil holds design fixtures and deterministic helpers shared by
// tests across packages.
package testutil
