package entity

// LifecycleStatus estado de vida único para todas las entidades de catálogo.
// Reemplaza banderas de borrado lógico dispersas: una entidad archivada no participa en operaciones nuevas.
type LifecycleStatus string

const (
	LifecycleActive   LifecycleStatus = "ACTIVE"
	LifecycleArchived LifecycleStatus = "ARCHIVED"
)
