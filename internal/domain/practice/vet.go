package practice

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Vet es una Person que atiende un subconjunto de especies.
// PatientList es derivado: snapshot calculado contra los owners que se pasaron
// en cada llamada, no se actualiza solo.
type Vet struct {
	Person
	handle string

	CertificateNumber string
	TreatedSpecies    []string // orden del caller, duplicados permitidos
	PatientList       *PetSet
}

func NewVet(person Person, certificateNumber string, treatedSpecies []string) *Vet {
	return &Vet{
		Person:            person,
		handle:            uuid.NewString(),
		CertificateNumber: certificateNumber,
		TreatedSpecies:    slices.Clone(treatedSpecies),
		PatientList:       NewSet[*Pet](),
	}
}

// NewVetForOwners crea el vet y carga pacientes desde owners.
func NewVetForOwners(person Person, certificateNumber string, treatedSpecies []string, owners []*Owner) *Vet {
	v := NewVet(person, certificateNumber, treatedSpecies)
	v.FilterAndAddPatients(owners)
	return v
}

func (v *Vet) Handle() string {
	if v == nil {
		return ""
	}
	return v.handle
}

// Treats compara la especie exacto (case-sensitive, sin normalizar).
func (v *Vet) Treats(species string) bool {
	return slices.Contains(v.TreatedSpecies, species)
}

// FilterAndAddPatients agrega a PatientList las mascotas de owners cuya especie
// atiende este vet. Solo agrega, nunca quita: llamarla varias veces acumula.
// Devuelve cuántos pacientes nuevos entraron.
func (v *Vet) FilterAndAddPatients(owners []*Owner) int {
	added := 0
	for _, o := range owners {
		if o == nil || o.GuardedPets == nil {
			continue
		}
		for _, p := range o.GuardedPets.Items() {
			if p == nil || !v.Treats(p.Species) {
				continue
			}
			if v.PatientList.Add(p) {
				added++
			}
		}
	}
	return added
}

// RecomputePatients descarta el snapshot actual y lo recalcula desde owners.
func (v *Vet) RecomputePatients(owners []*Owner) int {
	v.PatientList.Clear()
	return v.FilterAndAddPatients(owners)
}

func (v *Vet) String() string {
	return v.Person.String() + fmt.Sprintf(", Certificate: %s, Treated Species: %s, Patients: %d",
		v.CertificateNumber, strings.Join(v.TreatedSpecies, ", "), v.PatientList.Len())
}
