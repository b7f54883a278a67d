// Package dataset carga una práctica completa (owners, mascotas, vets, clínicas)
// desde YAML y la registra en un registry.Service.
package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"vet-practice/internal/domain/practice"
	"vet-practice/internal/domain/registry"
)

var (
	ErrUnknownReference = errors.New("unknown reference")
)

//go:embed sample.yaml
var sampleYAML []byte

type Dataset struct {
	Owners  []Owner  `yaml:"owners"`
	Pets    []Pet    `yaml:"pets"`
	Vets    []Vet    `yaml:"vets"`
	Clinics []Clinic `yaml:"clinics"`
	Checks  []Check  `yaml:"checks"`
}

type Person struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	Email string `yaml:"email"`
}

type Owner struct {
	Person         `yaml:",inline"`
	BillingAddress string `yaml:"billing_address"`
}

type Pet struct {
	Name    string `yaml:"name"`
	Species string `yaml:"species"`
	Age     int    `yaml:"age"`
	OwnerID string `yaml:"owner_id"`
	Chip    string `yaml:"chip"`
}

type Vet struct {
	Person      `yaml:",inline"`
	Certificate string   `yaml:"certificate"`
	Species     []string `yaml:"species"`

	// PatientsFrom: IDs de owners contra los que se calcula el PatientList al crear el vet.
	PatientsFrom []string `yaml:"patients_from"`
}

type Clinic struct {
	Name    string   `yaml:"name"`
	Address string   `yaml:"address"`
	Phone   string   `yaml:"phone"`
	Email   string   `yaml:"email"`
	Vets    []string `yaml:"vets"`
}

// Check es un "¿esta mascota se atiende en esta clínica?" para correr en la demo.
type Check struct {
	Chip   string `yaml:"chip"`
	Clinic string `yaml:"clinic"`
}

// Parse decodifica YAML estricto (campos desconocidos son error).
func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return &ds, nil
		}
		return nil, fmt.Errorf("dataset: decode yaml: %w", err)
	}
	return &ds, nil
}

func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(`dataset: failed to read "%s": %w`, path, err)
	}
	return Parse(data)
}

// Sample devuelve el dataset de ejemplo embebido.
func Sample() *Dataset {
	ds, err := Parse(sampleYAML)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded sample is invalid: %v", err))
	}
	return ds
}

func (p Person) toPerson() practice.Person {
	return practice.NewPerson(p.ID, p.Name, p.Phone, p.Email)
}

// Build crea las entidades y las registra en svc, en orden: owners, mascotas,
// vets (con su snapshot de pacientes) y clínicas.
// Las referencias (owner_id, patients_from, vets) deben existir en el mismo dataset.
func Build(ctx context.Context, ds *Dataset, svc *registry.Service) error {
	if ds == nil {
		return errors.New("dataset: nil dataset")
	}

	owners := make(map[string]*practice.Owner, len(ds.Owners))
	for _, in := range ds.Owners {
		o := practice.NewOwner(in.toPerson(), in.BillingAddress)
		if err := svc.RegisterOwner(ctx, o); err != nil {
			return fmt.Errorf("dataset: owner %q: %w", in.ID, err)
		}
		owners[in.ID] = o
	}

	for i, in := range ds.Pets {
		if _, ok := owners[in.OwnerID]; !ok {
			return fmt.Errorf("dataset: pet %q: owner %q: %w", in.Chip, in.OwnerID, ErrUnknownReference)
		}
		p, err := practice.NewPet(in.Name, in.Species, in.Age, in.OwnerID, in.Chip)
		if err != nil {
			return fmt.Errorf("dataset: pet #%d (%s): %w", i+1, in.Name, err)
		}
		if err := svc.RegisterPet(ctx, p); err != nil {
			return fmt.Errorf("dataset: pet %q: %w", in.Chip, err)
		}
	}

	for _, in := range ds.Vets {
		var v *practice.Vet
		if len(in.PatientsFrom) == 0 {
			v = practice.NewVet(in.toPerson(), in.Certificate, in.Species)
		} else {
			from := make([]*practice.Owner, 0, len(in.PatientsFrom))
			for _, id := range in.PatientsFrom {
				o, ok := owners[id]
				if !ok {
					return fmt.Errorf("dataset: vet %q: owner %q: %w", in.ID, id, ErrUnknownReference)
				}
				from = append(from, o)
			}
			v = practice.NewVetForOwners(in.toPerson(), in.Certificate, in.Species, from)
		}
		if err := svc.RegisterVet(ctx, v); err != nil {
			return fmt.Errorf("dataset: vet %q: %w", in.ID, err)
		}
	}

	for _, in := range ds.Clinics {
		c := practice.NewVetClinic(in.Name, in.Address, in.Phone, in.Email)
		if err := svc.RegisterClinic(ctx, c); err != nil {
			return fmt.Errorf("dataset: clinic %q: %w", in.Name, err)
		}
		for _, vetID := range in.Vets {
			if err := svc.StaffClinic(ctx, in.Name, vetID); err != nil {
				if errors.Is(err, registry.ErrNotFound) {
					return fmt.Errorf("dataset: clinic %q: vet %q: %w", in.Name, vetID, ErrUnknownReference)
				}
				return fmt.Errorf("dataset: clinic %q: %w", in.Name, err)
			}
		}
	}

	return nil
}

// RunChecks escribe en w el reporte CheckClinic de cada check, en orden.
func RunChecks(ctx context.Context, w io.Writer, checks []Check, svc *registry.Service) error {
	for _, c := range checks {
		p, err := svc.PetByChip(ctx, c.Chip)
		if err != nil {
			return fmt.Errorf("check: pet %q: %w", c.Chip, err)
		}
		clinic, err := svc.ClinicByName(ctx, c.Clinic)
		if err != nil {
			return fmt.Errorf("check: clinic %q: %w", c.Clinic, err)
		}
		p.CheckClinic(w, clinic)
	}
	return nil
}
