package registry

import (
	"context"

	"vet-practice/internal/domain/practice"
)

// Repository indexa por la clave exacta: no recorta espacios ni cambia mayúsculas.
type Repository interface {
	CreateOwner(ctx context.Context, o *practice.Owner) error
	GetOwner(ctx context.Context, personalID string) (*practice.Owner, error)
	ListOwners(ctx context.Context) ([]*practice.Owner, error)
	// RekeyOwner mueve el owner de oldID a newID y reescribe, bajo el mismo lock,
	// su PersonalID y el OwnerPersonalID de sus mascotas. Devuelve cuántas mascotas cambió.
	RekeyOwner(ctx context.Context, oldID, newID string) (int, error)

	CreatePet(ctx context.Context, p *practice.Pet) error
	GetPetByChip(ctx context.Context, chipNumber string) (*practice.Pet, error)
	ListPetsByOwner(ctx context.Context, ownerPersonalID string) ([]*practice.Pet, error)

	CreateVet(ctx context.Context, v *practice.Vet) error
	GetVet(ctx context.Context, personalID string) (*practice.Vet, error)
	ListVets(ctx context.Context) ([]*practice.Vet, error)

	CreateClinic(ctx context.Context, c *practice.VetClinic) error
	GetClinic(ctx context.Context, name string) (*practice.VetClinic, error)
	ListClinics(ctx context.Context) ([]*practice.VetClinic, error)
}
