// Package supervisor manages the dev stack's child services. A
// Supervisor owns every process it starts and shuts them down in
// reverse start order with an explicit Shutdown call, so teardown never
// depends on package-level state.
package supervisor
