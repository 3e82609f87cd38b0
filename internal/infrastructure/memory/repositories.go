package memory

import (
	"github.com/shopspring/decimal"

	"github.com/aromalab/aromalab-api/internal/domain"
	"github.com/aromalab/aromalab-api/internal/domain/entity"
)

// Los repos atados a una "transacción" (locking=false) operan con el lock ya
// tomado por el TxRunner; los atados al almacén lo toman por llamada.

// ── materias primas ───────────────────────────────────────────────────────────

type materialRepo struct {
	s       *Store
	locking bool
}

func (r *materialRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *materialRepo) Create(material *entity.RawMaterial) error {
	defer r.lock()()
	for _, m := range r.s.materials {
		if m.Code == material.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.materials[material.ID] = cloneMaterial(material)
	return nil
}

func (r *materialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	defer r.lock()()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	return cloneMaterial(m), nil
}

// GetForUpdate no necesita bloqueo por fila: el TxRunner serializa con un
// lock global sobre el almacén.
func (r *materialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	return r.GetByID(id)
}

func (r *materialRepo) Update(material *entity.RawMaterial) error {
	defer r.lock()()
	if _, ok := r.s.materials[material.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.materials[material.ID] = cloneMaterial(material)
	return nil
}

func (r *materialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	defer r.lock()()
	m, ok := r.s.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Stock = stock
	return nil
}

func (r *materialRepo) List() ([]*entity.RawMaterial, error) {
	defer r.lock()()
	list := make([]*entity.RawMaterial, 0, len(r.s.materials))
	for _, m := range r.s.materials {
		list = append(list, cloneMaterial(m))
	}
	sortMaterials(list)
	return list, nil
}

func (r *materialRepo) ListCodes() ([]string, error) {
	defer r.lock()()
	codes := make([]string, 0, len(r.s.materials))
	for _, m := range r.s.materials {
		codes = append(codes, m.Code)
	}
	return codes, nil
}

func (r *materialRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.s.materials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.materials, id)
	return nil
}

// ── fórmulas ──────────────────────────────────────────────────────────────────

type formulaRepo struct {
	s       *Store
	locking bool
}

func (r *formulaRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *formulaRepo) Create(formula *entity.Formula) error {
	defer r.lock()()
	for _, f := range r.s.formulas {
		if f.Code == formula.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.formulas[formula.ID] = cloneFormula(formula)
	return nil
}

func (r *formulaRepo) GetByID(id string) (*entity.Formula, error) {
	defer r.lock()()
	f, ok := r.s.formulas[id]
	if !ok {
		return nil, nil
	}
	return cloneFormula(f), nil
}

func (r *formulaRepo) Update(formula *entity.Formula) error {
	defer r.lock()()
	if _, ok := r.s.formulas[formula.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.formulas[formula.ID] = cloneFormula(formula)
	return nil
}

func (r *formulaRepo) List() ([]*entity.Formula, error) {
	defer r.lock()()
	list := make([]*entity.Formula, 0, len(r.s.formulas))
	for _, f := range r.s.formulas {
		list = append(list, cloneFormula(f))
	}
	sortFormulas(list)
	return list, nil
}

func (r *formulaRepo) ListCodes() ([]string, error) {
	defer r.lock()()
	codes := make([]string, 0, len(r.s.formulas))
	for _, f := range r.s.formulas {
		codes = append(codes, f.Code)
	}
	return codes, nil
}

func (r *formulaRepo) ListReferencing(materialID string) ([]*entity.Formula, error) {
	defer r.lock()()
	var list []*entity.Formula
	for _, f := range r.s.formulas {
		if f.References(materialID) {
			list = append(list, cloneFormula(f))
		}
	}
	sortFormulas(list)
	return list, nil
}

func (r *formulaRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.s.formulas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.formulas, id)
	return nil
}

// ── órdenes ───────────────────────────────────────────────────────────────────

type orderRepo struct {
	s       *Store
	locking bool
}

func (r *orderRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *orderRepo) Create(order *entity.ManufacturingOrder) error {
	defer r.lock()()
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.ManufacturingOrder, error) {
	defer r.lock()()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) GetForUpdate(id string) (*entity.ManufacturingOrder, error) {
	return r.GetByID(id)
}

func (r *orderRepo) Update(order *entity.ManufacturingOrder) error {
	defer r.lock()()
	if _, ok := r.s.orders[order.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *orderRepo) List() ([]*entity.ManufacturingOrder, error) {
	defer r.lock()()
	list := make([]*entity.ManufacturingOrder, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		list = append(list, cloneOrder(o))
	}
	return list, nil
}

func (r *orderRepo) ListOrderNumbers() ([]string, error) {
	defer r.lock()()
	numbers := make([]string, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		numbers = append(numbers, o.OrderNumber)
	}
	return numbers, nil
}

// ── usuarios ──────────────────────────────────────────────────────────────────

type userRepo struct {
	s       *Store
	locking bool
}

func (r *userRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *userRepo) Create(user *entity.User) error {
	defer r.lock()()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(user *entity.User) error {
	defer r.lock()()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) List() ([]*entity.User, error) {
	defer r.lock()()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		list = append(list, cloneUser(u))
	}
	return list, nil
}

func (r *userRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// ── registro de actividad ─────────────────────────────────────────────────────

type activityRepo struct {
	s       *Store
	locking bool
}

func (r *activityRepo) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *activityRepo) Append(entry *entity.ActivityEntry) error {
	defer r.lock()()
	r.s.activity = append([]*entity.ActivityEntry{cloneActivity(entry)}, r.s.activity...)
	if len(r.s.activity) > entity.ActivityLogCap {
		r.s.activity = r.s.activity[:entity.ActivityLogCap]
	}
	return nil
}

func (r *activityRepo) List() ([]*entity.ActivityEntry, error) {
	defer r.lock()()
	list := make([]*entity.ActivityEntry, len(r.s.activity))
	for i, e := range r.s.activity {
		list[i] = cloneActivity(e)
	}
	return list, nil
}
