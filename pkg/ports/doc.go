/*
Package ports defines the driven ports (interfaces) for storing and sourcing
component trees.

These interfaces decouple the component model and codecs from external
implementations, so the same tree can live in memory, in Redis or in a Loam
document repository.

# Key Interfaces

  - ComponentStore: Persists built trees by ID (e.g., Memory or Redis).
  - Catalog: Read-only source of trees authored as text (e.g., Loam or Memory).
  - Watchable: Optional change notifications for catalogs backed by files.
*/
package ports
