/*
Package domain contains the core value types shared by every Stepwise component.

It defines the recorded form of an algorithm run and the small amount of bookkeeping
needed to replay it. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Snapshot: One immutable instant of an algorithm run (Tag, Description, State).
  - Trace: The complete, ordered sequence of Snapshots produced by one run.
  - Scenario: A named algorithm invocation with its raw input.
  - Session: A playback cursor over the Trace of a Scenario (the Trace itself is never stored).
*/
package domain
