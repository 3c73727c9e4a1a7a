package argv

import (
	"strconv"
	"time"
)

// coerceBool parses an explicit boolean token. The internal scanner never
// produces one (presence alone sets a boolean flag), but the flag-package
// bridge in flagset.go passes "true" and "false" through here.
func coerceBool(name, token string) (bool, error) {
	b, err := strconv.ParseBool(token)
	if err != nil {
		return false, &CoercionError{Flag: name, Kind: KindBool, Token: token}
	}
	return b, nil
}

// coerceInt parses a base-10, optionally signed integer token. Anything else,
// including hex and float literals, is a [CoercionError].
func coerceInt(name, token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, &CoercionError{Flag: name, Kind: KindInt, Token: token}
	}
	return n, nil
}

// coerceFloat parses a decimal floating-point token. Integer-shaped tokens
// are accepted and widened.
func coerceFloat(name, token string) (float64, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &CoercionError{Flag: name, Kind: KindFloat, Token: token}
	}
	return f, nil
}

// coerceDuration parses a [time.ParseDuration] literal such as "250ms".
func coerceDuration(name, token string) (time.Duration, error) {
	d, err := time.ParseDuration(token)
	if err != nil {
		return 0, &CoercionError{Flag: name, Kind: KindDuration, Token: token}
	}
	return d, nil
}
