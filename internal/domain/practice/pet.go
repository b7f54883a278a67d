package practice

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Pet es una mascota. OwnerPersonalID es una copia del ID del dueño, no una
// referencia viva: si el dueño cambia de ID, la mascota no se entera
// (para eso está registry.Service.RenameOwner).
type Pet struct {
	handle string

	Name            string
	Species         string
	AgeInYears      int
	OwnerPersonalID string
	ChipNumber      string
}

// NewPet solo valida el chip. Edad negativa, nombre vacío, etc. se aceptan tal cual.
func NewPet(name, species string, ageInYears int, ownerPersonalID, chipNumber string) (*Pet, error) {
	if chipNumber == "" {
		return nil, fmt.Errorf("%w: chip number is required", ErrInvalidArgument)
	}

	return &Pet{
		handle:          uuid.NewString(),
		Name:            name,
		Species:         species,
		AgeInYears:      ageInYears,
		OwnerPersonalID: ownerPersonalID,
		ChipNumber:      chipNumber,
	}, nil
}

// Handle identifica a la mascota dentro de los sets (no es el chip).
func (p *Pet) Handle() string {
	if p == nil {
		return ""
	}
	return p.handle
}

// TreatingVets devuelve los vets de la clínica cuyo PatientList contiene esta mascota.
func (p *Pet) TreatingVets(clinic *VetClinic) []*Vet {
	if clinic == nil {
		return nil
	}

	out := make([]*Vet, 0)
	for _, v := range clinic.ListOfVets.Items() {
		if v != nil && v.PatientList.Contains(p) {
			out = append(out, v)
		}
	}
	return out
}

// ClinicReport arma el texto que imprime CheckClinic.
// Ojo: la primera línea del caso "treated" termina con un espacio (formato heredado).
func (p *Pet) ClinicReport(clinic *VetClinic) string {
	if clinic == nil {
		return ""
	}

	vets := p.TreatingVets(clinic)
	if len(vets) == 0 {
		return fmt.Sprintf("%s is not being treated at %s\n", p.Name, clinic.ClinicName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is treated at %s by: \n", p.Name, clinic.ClinicName)
	for _, v := range vets {
		b.WriteString(v.Name)
		b.WriteString("\n")
	}
	return b.String()
}

// CheckClinic escribe el reporte en w. No muta nada.
func (p *Pet) CheckClinic(w io.Writer, clinic *VetClinic) {
	_, _ = io.WriteString(w, p.ClinicReport(clinic))
}

func (p *Pet) String() string {
	return fmt.Sprintf("Name: %s, Species: %s, Age: %d, Owner ID: %s, Chip: %s",
		p.Name, p.Species, p.AgeInYears, p.OwnerPersonalID, p.ChipNumber)
}
