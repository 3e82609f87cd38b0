// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con el mismo contrato que el adaptador PostgreSQL: registros por
// clave, GetByID que devuelve (nil, nil) si no existe y un TxRunner atómico
// (snapshot + restauración si el callback falla). Lo usan los tests de los
// casos de uso; también sirve para demos sin base de datos.
package memory

import (
	"sort"
	"sync"

	"github.com/aromalab/aromalab-api/internal/domain/entity"
	"github.com/aromalab/aromalab-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	materials map[string]*entity.RawMaterial
	formulas  map[string]*entity.Formula
	orders    map[string]*entity.ManufacturingOrder
	users     map[string]*entity.User
	activity  []*entity.ActivityEntry // más reciente primero
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		materials: map[string]*entity.RawMaterial{},
		formulas:  map[string]*entity.Formula{},
		orders:    map[string]*entity.ManufacturingOrder{},
		users:     map[string]*entity.User{},
	}
}

// Materials devuelve el repositorio de materias primas atado al almacén.
func (s *Store) Materials() repository.MaterialRepository { return &materialRepo{s: s, locking: true} }

// Formulas devuelve el repositorio de fórmulas atado al almacén.
func (s *Store) Formulas() repository.FormulaRepository { return &formulaRepo{s: s, locking: true} }

// Orders devuelve el repositorio de órdenes atado al almacén.
func (s *Store) Orders() repository.OrderRepository { return &orderRepo{s: s, locking: true} }

// Users devuelve el repositorio de usuarios atado al almacén.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s, locking: true} }

// Activity devuelve el repositorio del registro de actividad.
func (s *Store) Activity() repository.ActivityRepository { return &activityRepo{s: s, locking: true} }

// ── snapshot ──────────────────────────────────────────────────────────────────

type snapshot struct {
	materials map[string]*entity.RawMaterial
	formulas  map[string]*entity.Formula
	orders    map[string]*entity.ManufacturingOrder
	users     map[string]*entity.User
	activity  []*entity.ActivityEntry
}

// take copia el estado completo; se llama con el lock tomado.
func (s *Store) take() snapshot {
	snap := snapshot{
		materials: make(map[string]*entity.RawMaterial, len(s.materials)),
		formulas:  make(map[string]*entity.Formula, len(s.formulas)),
		orders:    make(map[string]*entity.ManufacturingOrder, len(s.orders)),
		users:     make(map[string]*entity.User, len(s.users)),
		activity:  make([]*entity.ActivityEntry, len(s.activity)),
	}
	for id, m := range s.materials {
		snap.materials[id] = cloneMaterial(m)
	}
	for id, f := range s.formulas {
		snap.formulas[id] = cloneFormula(f)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	for id, u := range s.users {
		snap.users[id] = cloneUser(u)
	}
	copy(snap.activity, s.activity)
	return snap
}

// restore revierte al snapshot; se llama con el lock tomado.
func (s *Store) restore(snap snapshot) {
	s.materials = snap.materials
	s.formulas = snap.formulas
	s.orders = snap.orders
	s.users = snap.users
	s.activity = snap.activity
}

func cloneMaterial(m *entity.RawMaterial) *entity.RawMaterial {
	c := *m
	return &c
}

func cloneFormula(f *entity.Formula) *entity.Formula {
	c := *f
	c.Ingredients = append([]entity.FormulaIngredient(nil), f.Ingredients...)
	return &c
}

func cloneOrder(o *entity.ManufacturingOrder) *entity.ManufacturingOrder {
	c := *o
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneActivity(e *entity.ActivityEntry) *entity.ActivityEntry {
	c := *e
	return &c
}

// sortedByNumericCode ordena códigos numéricos en texto ("2" antes que "10").
func sortMaterials(list []*entity.RawMaterial) {
	sort.Slice(list, func(i, j int) bool {
		return numericLess(list[i].Code, list[j].Code)
	})
}

func sortFormulas(list []*entity.Formula) {
	sort.Slice(list, func(i, j int) bool {
		return numericLess(list[i].Code, list[j].Code)
	})
}

func numericLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
