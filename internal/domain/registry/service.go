package registry

import (
	"context"
	"errors"
	"fmt"

	"vet-practice/internal/domain/practice"
	"vet-practice/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)

// Service es la tabla de lookup de la práctica: owners por PersonalID, mascotas
// por chip, vets por PersonalID y clínicas por nombre.
// Las entidades siguen siendo las de practice; el registry solo mantiene los
// vínculos que practice deja como copia (Pet.OwnerPersonalID).
type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "registry"}),
	}
}

// Treatment agrupa los vets de una clínica que atienden a una mascota.
type Treatment struct {
	Clinic *practice.VetClinic
	Vets   []*practice.Vet
}

// RegisterOwner guarda el owner y le engancha las mascotas ya registradas con su ID.
func (s *Service) RegisterOwner(ctx context.Context, o *practice.Owner) error {
	if o == nil || o.PersonalID == "" {
		return ErrInvalidInput
	}
	if err := s.repo.CreateOwner(ctx, o); err != nil {
		return err
	}

	pets, err := s.repo.ListPetsByOwner(ctx, o.PersonalID)
	if err != nil {
		return err
	}
	for _, p := range pets {
		o.GuardedPets.Add(p)
	}

	s.log.Debug("owner registered", map[string]any{"owner_id": o.PersonalID, "pets": o.GuardedPets.Len()})
	return nil
}

// RegisterPet guarda la mascota (chip único) y, si su dueño ya existe,
// la agrega a GuardedPets.
func (s *Service) RegisterPet(ctx context.Context, p *practice.Pet) error {
	if p == nil || p.ChipNumber == "" {
		return ErrInvalidInput
	}
	if err := s.repo.CreatePet(ctx, p); err != nil {
		return err
	}

	fields := map[string]any{"chip": p.ChipNumber, "owner_id": p.OwnerPersonalID}

	o, err := s.repo.GetOwner(ctx, p.OwnerPersonalID)
	if err != nil {
		// Se tolera: el owner puede registrarse después.
		s.log.Debug("pet registered without known owner", fields)
		return nil
	}
	o.GuardedPets.Add(p)

	s.log.Debug("pet registered", fields)
	return nil
}

// OwnerOf resuelve el owner actual de una mascota a partir de su OwnerPersonalID.
func (s *Service) OwnerOf(ctx context.Context, p *practice.Pet) (*practice.Owner, error) {
	if p == nil {
		return nil, ErrInvalidInput
	}
	o, err := s.repo.GetOwner(ctx, p.OwnerPersonalID)
	if err != nil {
		return nil, ErrNotFound
	}
	return o, nil
}

// RenameOwner cambia el PersonalID de un owner y re-sincroniza el OwnerPersonalID
// de todas sus mascotas (registradas o en GuardedPets). Los IDs se comparan tal cual.
func (s *Service) RenameOwner(ctx context.Context, oldID, newID string) (*practice.Owner, error) {
	if oldID == "" || newID == "" {
		return nil, ErrInvalidInput
	}

	o, err := s.repo.GetOwner(ctx, oldID)
	if err != nil {
		return nil, ErrNotFound
	}
	if oldID == newID {
		return o, nil
	}

	moved, err := s.repo.RekeyOwner(ctx, oldID, newID)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("owner %q: %w", newID, ErrConflict)
		}
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.log.Info("owner renamed", map[string]any{"from": oldID, "to": newID, "pets_resynced": moved})
	return o, nil
}

func (s *Service) RegisterVet(ctx context.Context, v *practice.Vet) error {
	if v == nil || v.PersonalID == "" {
		return ErrInvalidInput
	}
	if err := s.repo.CreateVet(ctx, v); err != nil {
		return err
	}
	s.log.Debug("vet registered", map[string]any{"vet_id": v.PersonalID, "patients": v.PatientList.Len()})
	return nil
}

// AssignPatients corre FilterAndAddPatients del vet sobre todos los owners registrados.
func (s *Service) AssignPatients(ctx context.Context, vetID string) (int, error) {
	v, err := s.VetByID(ctx, vetID)
	if err != nil {
		return 0, err
	}
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return 0, err
	}

	added := v.FilterAndAddPatients(owners)
	s.log.Info("patients assigned", map[string]any{"vet_id": v.PersonalID, "added": added, "patients": v.PatientList.Len()})
	return added, nil
}

func (s *Service) RegisterClinic(ctx context.Context, c *practice.VetClinic) error {
	if c == nil || c.ClinicName == "" {
		return ErrInvalidInput
	}
	if err := s.repo.CreateClinic(ctx, c); err != nil {
		return err
	}
	s.log.Debug("clinic registered", map[string]any{"clinic": c.ClinicName})
	return nil
}

// StaffClinic agrega un vet registrado a una clínica registrada. Idempotente.
func (s *Service) StaffClinic(ctx context.Context, clinicName, vetID string) error {
	c, err := s.ClinicByName(ctx, clinicName)
	if err != nil {
		return err
	}
	v, err := s.VetByID(ctx, vetID)
	if err != nil {
		return err
	}

	if c.ListOfVets.Add(v) {
		s.log.Debug("clinic staffed", map[string]any{"clinic": c.ClinicName, "vet_id": v.PersonalID})
	}
	return nil
}

func (s *Service) PetByChip(ctx context.Context, chipNumber string) (*practice.Pet, error) {
	if chipNumber == "" {
		return nil, ErrInvalidInput
	}
	p, err := s.repo.GetPetByChip(ctx, chipNumber)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) OwnerByID(ctx context.Context, personalID string) (*practice.Owner, error) {
	if personalID == "" {
		return nil, ErrInvalidInput
	}
	o, err := s.repo.GetOwner(ctx, personalID)
	if err != nil {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) VetByID(ctx context.Context, personalID string) (*practice.Vet, error) {
	if personalID == "" {
		return nil, ErrInvalidInput
	}
	v, err := s.repo.GetVet(ctx, personalID)
	if err != nil {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *Service) ClinicByName(ctx context.Context, name string) (*practice.VetClinic, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}
	c, err := s.repo.GetClinic(ctx, name)
	if err != nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) Owners(ctx context.Context) ([]*practice.Owner, error) {
	return s.repo.ListOwners(ctx)
}

func (s *Service) Vets(ctx context.Context) ([]*practice.Vet, error) {
	return s.repo.ListVets(ctx)
}

func (s *Service) Clinics(ctx context.Context) ([]*practice.VetClinic, error) {
	return s.repo.ListClinics(ctx)
}

// WhereTreated recorre todas las clínicas y devuelve solo las que tienen
// al menos un vet con la mascota en su PatientList.
func (s *Service) WhereTreated(ctx context.Context, p *practice.Pet) ([]Treatment, error) {
	if p == nil {
		return nil, ErrInvalidInput
	}
	clinics, err := s.repo.ListClinics(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Treatment, 0)
	for _, c := range clinics {
		vets := p.TreatingVets(c)
		if len(vets) == 0 {
			continue
		}
		out = append(out, Treatment{Clinic: c, Vets: vets})
	}
	return out, nil
}
