package memory

import (
	"context"

	"github.com/aromalab/aromalab-api/internal/application/production"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner emula la transacción SQL con un lock global y un snapshot que se
// restaura si el callback falla: mismo contrato todo-o-nada que el adaptador
// PostgreSQL.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run toma el lock, saca un snapshot y ejecuta fn con repos sin bloqueo
// propio. Si fn devuelve error se restaura el snapshot.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	formulaRepo repository.FormulaRepository,
	materialRepo repository.MaterialRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.take()
	err := fn(
		&orderRepo{s: r.s},
		&formulaRepo{s: r.s},
		&materialRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
