/*
Package session implements paced playback sessions over algorithm traces.

A session stores only its scenario and a cursor position. Because runs are
deterministic, every operation rebuilds the trace from the scenario and resumes a
Stepper at the stored position, so no trace is ever persisted.

Access to one session is serialized in-process with reference-counted locks and,
optionally, across replicas with a ports.DistributedLocker.
*/
package session
