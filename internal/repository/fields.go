package repository

import "fmt"

// encryptAll returns the ciphertexts of values in the same order.
func encryptAll(c Cipher, values ...string) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		enc, err := c.Encrypt(v)
		if err != nil {
			return nil, fmt.Errorf("encrypt field %d: %w", i, err)
		}
		out[i] = enc
	}
	return out, nil
}

// decryptInPlace replaces every field with its plaintext.
func decryptInPlace(c Cipher, fields ...*string) error {
	for i, f := range fields {
		dec, err := c.Decrypt(*f)
		if err != nil {
			return fmt.Errorf("decrypt field %d: %w", i, err)
		}
		*f = dec
	}
	return nil
}
