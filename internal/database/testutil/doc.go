// Package testutil provides database testing helpers.
//
// Open creates an in-memory SQLite database wrapped in the same DB type
// the binaries use against PostgreSQL, so provisioning and verification
// logic is exercised against a real SQL engine in tests.
//
//	db := testutil.Open(t)
//	testutil.MustLoadFixture(t, db.GormDB, "users", []map[string]interface{}{
//	    {"clerk_user_id": "test_user_001", "display_name": "Test User"},
//	})
//	testutil.AssertRowCount(t, db.GormDB, "users", 1)
package testutil
