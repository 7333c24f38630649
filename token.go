package avrx

import "github.com/google/uuid"

// Token identifies one observer registration. The zero Token means
// "not registered".
type Token struct {
	id uuid.UUID
}

func NewToken() Token {
	return Token{uuid.New()}
}

func (t Token) IsZero() bool {
	return t.id == uuid.Nil
}

func (t Token) String() string {
	if t.IsZero() {
		return "none"
	}
	return t.id.String()
}
