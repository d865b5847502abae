package storage

import "github.com/jhoicas/Facturador-api/internal/domain/entity"

// NoopStore implementa SnapshotStore sin persistir nada. Es el fallback
// cuando el archivo local no se puede abrir (disco lleno, ruta sin permisos):
// la sesión sigue funcionando solo en memoria en vez de abortar.
type NoopStore struct{}

// NewNoopStore construye el store nulo.
func NewNoopStore() *NoopStore { return &NoopStore{} }

func (*NoopStore) Save(*entity.DocumentState) error     { return nil }
func (*NoopStore) Load() (*entity.DocumentState, error) { return nil, nil }
func (*NoopStore) Clear() error                         { return nil }
