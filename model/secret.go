package model

const secretMask = `**********`

// Secret is a string that redacts itself when displayed or serialized.
type Secret string

func (s Secret) String() string {
	return secretMask
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + secretMask + `"`), nil
}

// Reveal returns the underlying value.
func (s Secret) Reveal() string {
	return string(s)
}

// SecretBytes is a byte sequence that redacts itself when displayed or
// serialized.
type SecretBytes []byte

func (s SecretBytes) String() string {
	return secretMask
}

func (s SecretBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + secretMask + `"`), nil
}

func (s SecretBytes) Reveal() []byte {
	return []byte(s)
}
