package registry_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	mem "vet-practice/internal/adapters/storage/memory"
	"vet-practice/internal/domain/practice"
	"vet-practice/internal/domain/registry"
	"vet-practice/internal/platform/logger"
)

func newService(t *testing.T) (*registry.Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Output: &buf})
	return registry.NewService(mem.NewRegistryRepo(), log), &buf
}

func pet(t *testing.T, name, species, ownerID, chip string) *practice.Pet {
	t.Helper()
	p, err := practice.NewPet(name, species, 1, ownerID, chip)
	if err != nil {
		t.Fatalf("NewPet error: %v", err)
	}
	return p
}

func TestService_RegisterPet_LinksKnownOwner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	alice := practice.NewOwner(practice.NewPerson("O1", "Alice", "", ""), "123 Main St")
	if err := svc.RegisterOwner(ctx, alice); err != nil {
		t.Fatalf("RegisterOwner error: %v", err)
	}

	fluffy := pet(t, "Fluffy", "Dog", "O1", "CHIP001")
	if err := svc.RegisterPet(ctx, fluffy); err != nil {
		t.Fatalf("RegisterPet error: %v", err)
	}
	if !alice.GuardedPets.Contains(fluffy) {
		t.Fatalf("expected pet linked into owner's set")
	}

	got, err := svc.OwnerOf(ctx, fluffy)
	if err != nil || got != alice {
		t.Fatalf("OwnerOf: expected alice, got %v (err=%v)", got, err)
	}
}

func TestService_RegisterOwner_AdoptsEarlierPets(t *testing.T) {
	ctx := context.Background()
	svc, buf := newService(t)

	buddy := pet(t, "Buddy", "Dog", "O2", "CHIP003")
	if err := svc.RegisterPet(ctx, buddy); err != nil {
		t.Fatalf("RegisterPet error: %v", err)
	}
	if !strings.Contains(buf.String(), "pet registered without known owner") {
		t.Fatalf("expected debug log for orphan pet, got %q", buf.String())
	}

	bob := practice.NewOwner(practice.NewPerson("O2", "Bob", "", ""), "456 Oak St")
	if err := svc.RegisterOwner(ctx, bob); err != nil {
		t.Fatalf("RegisterOwner error: %v", err)
	}
	if bob.GuardedPets.Len() != 1 || !bob.GuardedPets.Contains(buddy) {
		t.Fatalf("expected bob to guard buddy, got %v", bob.GuardedPets.Items())
	}
}

func TestService_Register_RejectsInvalidAndDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if err := svc.RegisterOwner(ctx, nil); err != registry.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.RegisterPet(ctx, &practice.Pet{Name: "NoChip"}); err != registry.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for pet without chip, got %v", err)
	}

	o := practice.NewOwner(practice.NewPerson("O1", "Alice", "", ""), "")
	_ = svc.RegisterOwner(ctx, o)
	dup := practice.NewOwner(practice.NewPerson("O1", "Other Alice", "", ""), "")
	if err := svc.RegisterOwner(ctx, dup); !errors.Is(err, registry.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	_ = svc.RegisterPet(ctx, pet(t, "A", "Dog", "O1", "CHIP001"))
	if err := svc.RegisterPet(ctx, pet(t, "B", "Dog", "O1", "CHIP001")); !errors.Is(err, registry.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate chip, got %v", err)
	}
}

func TestService_RenameOwner_ResyncsPets(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	alice := practice.NewOwner(practice.NewPerson("O1", "Alice", "", ""), "")
	_ = svc.RegisterOwner(ctx, alice)

	p1 := pet(t, "Fluffy", "Dog", "O1", "CHIP001")
	p2 := pet(t, "Whiskers", "Cat", "O1", "CHIP002")
	_ = svc.RegisterPet(ctx, p1)
	_ = svc.RegisterPet(ctx, p2)

	// Mascota agregada a mano (sin registrar) también se re-sincroniza.
	loose := pet(t, "Loose", "Cat", "O1", "CHIP099")
	alice.GuardedPets.Add(loose)

	renamed, err := svc.RenameOwner(ctx, "O1", "O100")
	if err != nil {
		t.Fatalf("RenameOwner error: %v", err)
	}
	if renamed.PersonalID != "O100" {
		t.Fatalf("expected new id, got %s", renamed.PersonalID)
	}
	for _, p := range []*practice.Pet{p1, p2, loose} {
		if p.OwnerPersonalID != "O100" {
			t.Fatalf("pet %s not resynced: %s", p.Name, p.OwnerPersonalID)
		}
	}

	if _, err := svc.OwnerByID(ctx, "O1"); err != registry.ErrNotFound {
		t.Fatalf("expected old id gone, got %v", err)
	}
	if got, err := svc.OwnerOf(ctx, p1); err != nil || got != alice {
		t.Fatalf("OwnerOf after rename: got %v err=%v", got, err)
	}
}

func TestService_RenameOwner_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_ = svc.RegisterOwner(ctx, practice.NewOwner(practice.NewPerson("O1", "Alice", "", ""), ""))
	_ = svc.RegisterOwner(ctx, practice.NewOwner(practice.NewPerson("O2", "Bob", "", ""), ""))

	if _, err := svc.RenameOwner(ctx, "", "O3"); err != registry.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.RenameOwner(ctx, "O404", "O3"); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.RenameOwner(ctx, "O1", "O2"); !errors.Is(err, registry.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_AssignPatients_StaffClinic_WhereTreated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_ = svc.RegisterOwner(ctx, practice.NewOwner(practice.NewPerson("O1", "Alice", "", ""), ""))
	_ = svc.RegisterOwner(ctx, practice.NewOwner(practice.NewPerson("O2", "Bob", "", ""), ""))

	fluffy := pet(t, "Fluffy", "Dog", "O1", "CHIP001")
	snowball := pet(t, "Snowball", "Rabbit", "O2", "CHIP004")
	_ = svc.RegisterPet(ctx, fluffy)
	_ = svc.RegisterPet(ctx, snowball)

	smith := practice.NewVet(practice.NewPerson("V1", "Dr. Smith", "", ""), "CERT001", []string{"Dog", "Cat"})
	johnson := practice.NewVet(practice.NewPerson("V2", "Dr. Johnson", "", ""), "CERT002", []string{"Rabbit", "Dog"})
	for _, v := range []*practice.Vet{smith, johnson} {
		if err := svc.RegisterVet(ctx, v); err != nil {
			t.Fatalf("RegisterVet error: %v", err)
		}
	}

	n, err := svc.AssignPatients(ctx, "V1")
	if err != nil || n != 1 {
		t.Fatalf("AssignPatients V1: expected 1, got %d err=%v", n, err)
	}
	if n, _ := svc.AssignPatients(ctx, "V2"); n != 2 {
		t.Fatalf("AssignPatients V2: expected 2, got %d", n)
	}
	if _, err := svc.AssignPatients(ctx, "V404"); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	happy := practice.NewVetClinic("Happy Pets Clinic", "123 Vet St", "", "")
	healthy := practice.NewVetClinic("Healthy Animals Center", "456 Health Rd", "", "")
	_ = svc.RegisterClinic(ctx, happy)
	_ = svc.RegisterClinic(ctx, healthy)

	if err := svc.StaffClinic(ctx, "Happy Pets Clinic", "V1"); err != nil {
		t.Fatalf("StaffClinic error: %v", err)
	}
	_ = svc.StaffClinic(ctx, "Happy Pets Clinic", "V1") // idempotente
	_ = svc.StaffClinic(ctx, "Healthy Animals Center", "V2")
	if happy.ListOfVets.Len() != 1 {
		t.Fatalf("expected 1 vet at happy, got %d", happy.ListOfVets.Len())
	}
	if err := svc.StaffClinic(ctx, "Nowhere", "V1"); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown clinic, got %v", err)
	}

	where, err := svc.WhereTreated(ctx, fluffy)
	if err != nil {
		t.Fatalf("WhereTreated error: %v", err)
	}
	if len(where) != 2 || where[0].Clinic != happy || where[1].Clinic != healthy {
		t.Fatalf("expected fluffy treated at both clinics, got %+v", where)
	}

	where, _ = svc.WhereTreated(ctx, snowball)
	if len(where) != 1 || where[0].Clinic != healthy || where[0].Vets[0] != johnson {
		t.Fatalf("expected snowball only at healthy by johnson, got %+v", where)
	}
}

func TestService_Lookups(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if _, err := svc.PetByChip(ctx, ""); err != registry.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.PetByChip(ctx, "CHIP404"); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ClinicByName(ctx, "Nope"); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	p := pet(t, "Fluffy", "Dog", "O1", "CHIP001")
	_ = svc.RegisterPet(ctx, p)
	if got, err := svc.PetByChip(ctx, "CHIP001"); err != nil || got != p {
		t.Fatalf("PetByChip: got %v err=%v", got, err)
	}
	if _, err := svc.OwnerOf(ctx, p); err != registry.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown owner, got %v", err)
	}
}

func TestService_PaddedChipsAreLookedUpVerbatim(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	padded := pet(t, "Fluffy", "Dog", "O1", " CHIP001")
	blank := pet(t, "Ghost", "Cat", "O1", "   ")
	for _, p := range []*practice.Pet{padded, blank} {
		if err := svc.RegisterPet(ctx, p); err != nil {
			t.Fatalf("RegisterPet(%q) error: %v", p.ChipNumber, err)
		}
	}

	if got, err := svc.PetByChip(ctx, " CHIP001"); err != nil || got != padded {
		t.Fatalf("PetByChip(padded): got %v err=%v", got, err)
	}
	if got, err := svc.PetByChip(ctx, "   "); err != nil || got != blank {
		t.Fatalf("PetByChip(blank): got %v err=%v", got, err)
	}
	if _, err := svc.PetByChip(ctx, "CHIP001"); err != registry.ErrNotFound {
		t.Fatalf("expected trimmed chip to be a different key, got %v", err)
	}
}

func TestService_PaddedOwnerID_LinksAndRenames(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	alice := practice.NewOwner(practice.NewPerson("O1 ", "Alice", "", ""), "")
	if err := svc.RegisterOwner(ctx, alice); err != nil {
		t.Fatalf("RegisterOwner error: %v", err)
	}
	fluffy := pet(t, "Fluffy", "Dog", "O1 ", "CHIP001")
	if err := svc.RegisterPet(ctx, fluffy); err != nil {
		t.Fatalf("RegisterPet error: %v", err)
	}
	if !alice.GuardedPets.Contains(fluffy) {
		t.Fatalf("expected pet linked to owner %q", alice.PersonalID)
	}
	if got, err := svc.OwnerOf(ctx, fluffy); err != nil || got != alice {
		t.Fatalf("OwnerOf: got %v err=%v", got, err)
	}
	if _, err := svc.OwnerByID(ctx, "O1"); err != registry.ErrNotFound {
		t.Fatalf("expected trimmed id to be a different key, got %v", err)
	}

	if _, err := svc.RenameOwner(ctx, "O1 ", "O2"); err != nil {
		t.Fatalf("RenameOwner error: %v", err)
	}
	if alice.PersonalID != "O2" || fluffy.OwnerPersonalID != "O2" {
		t.Fatalf("expected owner and pet on O2, got owner=%q pet=%q", alice.PersonalID, fluffy.OwnerPersonalID)
	}
	if got, err := svc.OwnerOf(ctx, fluffy); err != nil || got != alice {
		t.Fatalf("OwnerOf after rename: got %v err=%v", got, err)
	}
}
