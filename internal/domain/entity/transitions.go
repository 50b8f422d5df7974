package entity

// Transitions tabla de transiciones de una máquina de estados:
// estado actual -> estados destino permitidos. Centraliza la legalidad de
// los cambios de estado en lugar de dispersar guards por los casos de uso.
type Transitions map[string][]string

// Allowed indica si la transición from -> to es legal según la tabla.
func (t Transitions) Allowed(from, to string) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal indica si el estado no tiene transiciones salientes.
func (t Transitions) Terminal(status string) bool {
	next, ok := t[status]
	return ok && len(next) == 0
}

// Valid indica si el estado existe en la tabla.
func (t Transitions) Valid(status string) bool {
	_, ok := t[status]
	return ok
}
