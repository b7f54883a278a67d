package practice

import "fmt"

// Owner es una Person que cuida un set de mascotas.
// GuardedPets se muta directo desde afuera (Add/Remove); no hay más contrato.
type Owner struct {
	Person

	BillingAddress string
	GuardedPets    *PetSet
}

func NewOwner(person Person, billingAddress string) *Owner {
	return &Owner{
		Person:         person,
		BillingAddress: billingAddress,
		GuardedPets:    NewSet[*Pet](),
	}
}

func (o *Owner) String() string {
	return o.Person.String() + fmt.Sprintf(", Billing Address: %s, Pets: %d", o.BillingAddress, o.GuardedPets.Len())
}
