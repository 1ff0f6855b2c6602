/*
Package ports defines the driven ports (interfaces) of the bankocr service.

These interfaces decouple decoding from external implementations, allowing
the engine to keep its results in various storage backends.

# Key Interfaces

  - BatchStore: Responsible for persisting and loading decoded batches.
  - Locker: Serializes work on one source across processes.
*/
package ports
