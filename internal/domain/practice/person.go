package practice

import "fmt"

// Person es el registro de identidad/contacto compartido por Owner y Vet.
// PersonalID debería ser único en todo el dataset, pero eso lo garantiza el caller
// (o el registry), no este tipo.
type Person struct {
	PersonalID   string
	Name         string
	PhoneNumber  string
	EmailAddress string
}

// Individual es lo que tienen en común dueños y veterinarios.
type Individual interface {
	fmt.Stringer
	Identity() Person
}

func NewPerson(personalID, name, phoneNumber, emailAddress string) Person {
	return Person{
		PersonalID:   personalID,
		Name:         name,
		PhoneNumber:  phoneNumber,
		EmailAddress: emailAddress,
	}
}

func (p Person) Identity() Person { return p }

func (p Person) String() string {
	return fmt.Sprintf("ID: %s, Name: %s, Phone: %s, Email: %s",
		p.PersonalID, p.Name, p.PhoneNumber, p.EmailAddress)
}
