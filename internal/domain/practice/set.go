package practice

// Identifiable es cualquier entidad con un handle único (Pet, Vet).
type Identifiable interface {
	Handle() string
}

// Set guarda entidades por handle, no por valor de sus campos.
// Dos mascotas con los mismos datos pero distinto handle son entradas distintas.
// Mantiene orden de inserción para que los reportes sean estables.
type Set[T Identifiable] struct {
	byHandle map[string]T
	order    []string
}

type (
	PetSet = Set[*Pet]
	VetSet = Set[*Vet]
)

func NewSet[T Identifiable]() *Set[T] {
	return &Set[T]{byHandle: make(map[string]T)}
}

// Add devuelve false si el elemento ya estaba (o no tiene handle).
func (s *Set[T]) Add(v T) bool {
	h := v.Handle()
	if h == "" {
		return false
	}
	if s.byHandle == nil {
		s.byHandle = make(map[string]T)
	}
	if _, ok := s.byHandle[h]; ok {
		return false
	}
	s.byHandle[h] = v
	s.order = append(s.order, h)
	return true
}

func (s *Set[T]) Remove(v T) bool {
	h := v.Handle()
	if _, ok := s.byHandle[h]; !ok || h == "" {
		return false
	}
	delete(s.byHandle, h)
	for i, x := range s.order {
		if x == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Set[T]) Contains(v T) bool {
	h := v.Handle()
	if h == "" {
		return false
	}
	_, ok := s.byHandle[h]
	return ok
}

func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Items devuelve una copia en orden de inserción.
func (s *Set[T]) Items() []T {
	if s == nil {
		return nil
	}
	out := make([]T, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.byHandle[h])
	}
	return out
}

// Clear vacía el set conservando la instancia.
func (s *Set[T]) Clear() {
	s.byHandle = make(map[string]T)
	s.order = nil
}
