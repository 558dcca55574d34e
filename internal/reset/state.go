package reset

// State is the phase a reset run has reached. Transitions are strictly
// sequential: NotStarted, Dropped, Migrated, Seeded, FixtureLoaded,
// Verified. Failed is terminal and entered when a step aborts the run.
// SkipDrop jumps from NotStarted straight to the loader; without test
// data the flow goes from Seeded directly to Verified.
type State string

const (
	StateNotStarted    State = "not_started"
	StateDropped       State = "dropped"
	StateMigrated      State = "migrated"
	StateSeeded        State = "seeded"
	StateFixtureLoaded State = "fixture_loaded"
	StateVerified      State = "verified"
	StateFailed        State = "failed"
)
