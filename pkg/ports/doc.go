/*
Package ports defines the driven ports (interfaces) of the playback layer.

These interfaces decouple session handling from storage and coordination backends.

# Key Interfaces

  - SessionStore: persists playback sessions (scenario plus cursor position).
  - DistributedLocker: serializes access to one session across replicas.
*/
package ports
