// Package fixture provisions the deterministic test identity used to
// validate a freshly reset environment: one user, three accounts, five
// positions in the first account. Every step is idempotent, so the
// provisioner is safe to run against an environment that already holds
// the fixture.
package fixture
