package practice

import "fmt"

// VetClinic es una clínica con su set de veterinarios (se llena desde afuera).
type VetClinic struct {
	ClinicName    string
	ClinicAddress string
	ClinicPhone   string
	ClinicEmail   string

	ListOfVets *VetSet
}

func NewVetClinic(name, address, phone, email string) *VetClinic {
	return &VetClinic{
		ClinicName:    name,
		ClinicAddress: address,
		ClinicPhone:   phone,
		ClinicEmail:   email,
		ListOfVets:    NewSet[*Vet](),
	}
}

func (c *VetClinic) String() string {
	return fmt.Sprintf("Clinic: %s, Address: %s, Phone: %s, Vets: %d",
		c.ClinicName, c.ClinicAddress, c.ClinicPhone, c.ListOfVets.Len())
}
