package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vet-practice/internal/domain/practice"
	"vet-practice/internal/domain/registry"
)

var (
	ErrNotFound      = registry.ErrNotFound
	ErrAlreadyExists = registry.ErrConflict
)

// registryRepo guarda punteros a las entidades de practice, indexados por la
// clave exacta (sin normalizar). El mutex protege los índices y los campos
// que el repo reescribe (PersonalID y OwnerPersonalID en RekeyOwner).
type registryRepo struct {
	mu sync.RWMutex

	owners     map[string]*practice.Owner
	ownerOrder []string

	petsByChip map[string]*practice.Pet
	petOrder   []string

	vets     map[string]*practice.Vet
	vetOrder []string

	clinics     map[string]*practice.VetClinic
	clinicOrder []string
}

func NewRegistryRepo() registry.Repository {
	return &registryRepo{
		owners:     make(map[string]*practice.Owner),
		petsByChip: make(map[string]*practice.Pet),
		vets:       make(map[string]*practice.Vet),
		clinics:    make(map[string]*practice.VetClinic),
	}
}

// -------------------------
// Owners
// -------------------------

func (r *registryRepo) CreateOwner(ctx context.Context, o *practice.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := o.PersonalID
	if id == "" {
		return errors.New("owner id required")
	}
	if _, exists := r.owners[id]; exists {
		return fmt.Errorf("owner %q: %w", id, ErrAlreadyExists)
	}
	r.owners[id] = o
	r.ownerOrder = append(r.ownerOrder, id)
	return nil
}

func (r *registryRepo) GetOwner(ctx context.Context, personalID string) (*practice.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.owners[personalID]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (r *registryRepo) ListOwners(ctx context.Context) ([]*practice.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*practice.Owner, 0, len(r.ownerOrder))
	for _, id := range r.ownerOrder {
		out = append(out, r.owners[id])
	}
	return out, nil
}

// RekeyOwner mueve el owner a newID y re-sincroniza la copia OwnerPersonalID
// de las mascotas registradas y de las que guarda el owner. Devuelve cuántas cambió.
func (r *registryRepo) RekeyOwner(ctx context.Context, oldID, newID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.owners[oldID]
	if !ok {
		return 0, ErrNotFound
	}
	if newID == "" {
		return 0, errors.New("owner id required")
	}
	if _, exists := r.owners[newID]; exists {
		return 0, fmt.Errorf("owner %q: %w", newID, ErrAlreadyExists)
	}

	delete(r.owners, oldID)
	r.owners[newID] = o
	for i, id := range r.ownerOrder {
		if id == oldID {
			r.ownerOrder[i] = newID
			break
		}
	}
	o.PersonalID = newID

	moved := 0
	resync := func(p *practice.Pet) {
		if p != nil && p.OwnerPersonalID == oldID {
			p.OwnerPersonalID = newID
			moved++
		}
	}
	for _, chip := range r.petOrder {
		resync(r.petsByChip[chip])
	}
	for _, p := range o.GuardedPets.Items() {
		resync(p)
	}
	return moved, nil
}

// -------------------------
// Pets
// -------------------------

func (r *registryRepo) CreatePet(ctx context.Context, p *practice.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ChipNumber == "" {
		return errors.New("pet chip number required")
	}
	if _, exists := r.petsByChip[p.ChipNumber]; exists {
		return fmt.Errorf("pet %q: %w", p.ChipNumber, ErrAlreadyExists)
	}
	r.petsByChip[p.ChipNumber] = p
	r.petOrder = append(r.petOrder, p.ChipNumber)
	return nil
}

func (r *registryRepo) GetPetByChip(ctx context.Context, chipNumber string) (*practice.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.petsByChip[chipNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// ListPetsByOwner filtra por la copia OwnerPersonalID, en orden de alta.
func (r *registryRepo) ListPetsByOwner(ctx context.Context, ownerPersonalID string) ([]*practice.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*practice.Pet, 0)
	for _, chip := range r.petOrder {
		p := r.petsByChip[chip]
		if p.OwnerPersonalID == ownerPersonalID {
			out = append(out, p)
		}
	}
	return out, nil
}

// -------------------------
// Vets
// -------------------------

func (r *registryRepo) CreateVet(ctx context.Context, v *practice.Vet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := v.PersonalID
	if id == "" {
		return errors.New("vet id required")
	}
	if _, exists := r.vets[id]; exists {
		return fmt.Errorf("vet %q: %w", id, ErrAlreadyExists)
	}
	r.vets[id] = v
	r.vetOrder = append(r.vetOrder, id)
	return nil
}

func (r *registryRepo) GetVet(ctx context.Context, personalID string) (*practice.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vets[personalID]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (r *registryRepo) ListVets(ctx context.Context) ([]*practice.Vet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*practice.Vet, 0, len(r.vetOrder))
	for _, id := range r.vetOrder {
		out = append(out, r.vets[id])
	}
	return out, nil
}

// -------------------------
// Clinics
// -------------------------

func (r *registryRepo) CreateClinic(ctx context.Context, c *practice.VetClinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.ClinicName
	if name == "" {
		return errors.New("clinic name required")
	}
	if _, exists := r.clinics[name]; exists {
		return fmt.Errorf("clinic %q: %w", name, ErrAlreadyExists)
	}
	r.clinics[name] = c
	r.clinicOrder = append(r.clinicOrder, name)
	return nil
}

func (r *registryRepo) GetClinic(ctx context.Context, name string) (*practice.VetClinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clinics[name]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *registryRepo) ListClinics(ctx context.Context) ([]*practice.VetClinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*practice.VetClinic, 0, len(r.clinicOrder))
	for _, name := range r.clinicOrder {
		out = append(out, r.clinics[name])
	}
	return out, nil
}
