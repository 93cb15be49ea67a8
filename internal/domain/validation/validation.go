// Package validation reglas de formato de los formularios: nombre, email, RUT, precio y datos del comprador.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

const (
	MinNameLen    = 3
	MinAddressLen = 5
	MinRUTDigits  = 8
	MaxRUTLen     = 10 // con guion: 12345678-K
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldError error de un campo del formulario.
type FieldError struct {
	Field   string
	Message string
}

// Error agrupa errores de campos. errors.Is(err, domain.ErrInvalidInput) es true.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return domain.ErrInvalidInput.Error()
	}
	return e.Fields[0].Field + ": " + e.Fields[0].Message
}

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// SanitizePrice deja solo dígitos ("$12.990" -> "12990").
func SanitizePrice(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// SanitizeName deja letras (incluidas tildes y ñ) y espacios.
// El texto se compone a NFC antes de filtrar: "José" en NFD conserva la tilde.
func SanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || r == ' ' {
			return r
		}
		return -1
	}, norm.NFC.String(s))
}

// FormatRUT deja dígitos y K, e inserta el guion antes del dígito verificador.
// El resultado no supera MaxRUTLen caracteres.
func FormatRUT(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= '0' && r <= '9') || r == 'K' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if len(clean) > MaxRUTLen-1 {
		clean = clean[:MaxRUTLen-1]
	}
	if len(clean) < 2 {
		return clean
	}
	return clean[:len(clean)-1] + "-" + clean[len(clean)-1:]
}

// ValidName al menos 3 caracteres, solo letras y espacios.
func ValidName(s string) bool {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < MinNameLen {
		return false
	}
	return SanitizeName(s) == norm.NFC.String(s)
}

// ValidEmail patrón algo@algo.algo.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidRUT cuerpo numérico más verificador (dígito o K), con al menos 8 dígitos en total.
// Acepta el RUT con o sin puntos y guion.
func ValidRUT(s string) bool {
	clean := strings.ToUpper(strings.NewReplacer(".", "", "-", "", " ", "").Replace(strings.TrimSpace(s)))
	if len(clean) < MinRUTDigits || len(clean) > MaxRUTLen-1 {
		return false
	}
	body, dv := clean[:len(clean)-1], clean[len(clean)-1]
	for _, r := range body {
		if r < '0' || r > '9' {
			return false
		}
	}
	return (dv >= '0' && dv <= '9') || dv == 'K'
}

// ValidAddress al menos 5 caracteres.
func ValidAddress(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinAddressLen
}

// ValidPayment tarjeta, transferencia o efectivo.
func ValidPayment(m string) bool {
	switch m {
	case entity.PaymentCard, entity.PaymentTransfer, entity.PaymentCash:
		return true
	}
	return false
}

// ValidateBuyer revisa los datos del comprador. Slice vacío = válido.
func ValidateBuyer(b entity.Buyer) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, FieldError{"nombre", "El nombre es obligatorio"})
	} else if !ValidName(b.Name) {
		errs = append(errs, FieldError{"nombre", "El nombre debe tener al menos 3 letras"})
	}
	if strings.TrimSpace(b.Email) == "" {
		errs = append(errs, FieldError{"email", "El email es obligatorio"})
	} else if !ValidEmail(b.Email) {
		errs = append(errs, FieldError{"email", "El email no es válido"})
	}
	if !ValidRUT(b.RUT) {
		errs = append(errs, FieldError{"rut", "El RUT debe tener al menos 8 dígitos"})
	}
	if !ValidAddress(b.Address) {
		errs = append(errs, FieldError{"direccion", "La dirección debe tener al menos 5 caracteres"})
	}
	if !ValidPayment(b.Payment) {
		errs = append(errs, FieldError{"metodoPago", "Método de pago inválido"})
	}
	return errs
}
