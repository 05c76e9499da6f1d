package symmetry

import (
	"fmt"
	"strings"
)

// Den is the denominator of translation parts. All crystallographic
// translations are multiples of 1/24.
const Den = 24

// Op is a single symmetry operation: an integer rotation matrix and a
// translation in 24ths.
type Op struct {
	Rot  [3][3]int
	Tran [3]int
}

// IdentityOp returns the identity operation "x,y,z".
func IdentityOp() Op {
	return Op{Rot: [3][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// InversionOp returns the inversion operation "-x,-y,-z".
func InversionOp() Op {
	return Op{Rot: [3][3]int{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}}
}

// IsIdentity reports whether o is the identity operation.
func (o Op) IsIdentity() bool {
	return o == IdentityOp()
}

// RotIsInversion reports whether the rotation part is -I, regardless
// of translation.
func (o Op) RotIsInversion() bool {
	return o.Rot == InversionOp().Rot
}

// Mul composes two operations: applying the result is equivalent to
// applying b first and then o. Translations are normalized to [0, Den).
func (o Op) Mul(b Op) Op {
	var r Op
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Rot[i][j] = o.Rot[i][0]*b.Rot[0][j] + o.Rot[i][1]*b.Rot[1][j] + o.Rot[i][2]*b.Rot[2][j]
		}
		t := o.Rot[i][0]*b.Tran[0] + o.Rot[i][1]*b.Tran[1] + o.Rot[i][2]*b.Tran[2] + o.Tran[i]
		r.Tran[i] = ((t % Den) + Den) % Den
	}
	return r
}

// ApplyToHKL transforms a Miller index by the rotation part using the
// row-vector convention: h'_j = sum_i h_i * Rot[i][j].
func (o Op) ApplyToHKL(h [3]int) [3]int {
	var r [3]int
	for j := 0; j < 3; j++ {
		r[j] = h[0]*o.Rot[0][j] + h[1]*o.Rot[1][j] + h[2]*o.Rot[2][j]
	}
	return r
}

// PhaseUnits returns (h . Tran) mod Den, the phase shift of the
// operation for the given index in units of 2*pi/Den.
func (o Op) PhaseUnits(h [3]int) int {
	t := h[0]*o.Tran[0] + h[1]*o.Tran[1] + h[2]*o.Tran[2]
	return ((t % Den) + Den) % Den
}

// ParseOp parses a triplet such as "x,y,z" or "-x,y+1/2,-z".
// Coordinate letters may be x/y/z in any case; fractions must have
// denominators dividing 24.
func ParseOp(triplet string) (Op, error) {
	parts := strings.Split(triplet, ",")
	if len(parts) != 3 {
		return Op{}, fmt.Errorf("symmetry: triplet %q must have 3 comma-separated parts", triplet)
	}
	var op Op
	for i, part := range parts {
		row, tran, err := parseExpr(part)
		if err != nil {
			return Op{}, fmt.Errorf("symmetry: triplet %q: %w", triplet, err)
		}
		op.Rot[i] = row
		op.Tran[i] = tran
	}
	return op, nil
}

// MustParseOp is like ParseOp but panics on error. Intended for
// constants and tests.
func MustParseOp(triplet string) Op {
	op, err := ParseOp(triplet)
	if err != nil {
		panic(err)
	}
	return op
}

// parseExpr parses one coordinate expression like "-x+1/2" into a
// rotation row and a translation in 24ths.
func parseExpr(s string) (row [3]int, tran int, err error) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if s == "" {
		return row, 0, fmt.Errorf("empty coordinate expression")
	}
	sign := 1
	num := 0
	haveNum := false
	flush := func() {
		if haveNum {
			tran += sign * num * Den
			num = 0
			haveNum = false
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+' || c == '-':
			flush()
			if c == '-' {
				sign = -1
			} else {
				sign = 1
			}
		case c >= '0' && c <= '9':
			num = num*10 + int(c-'0')
			haveNum = true
		case c == '/':
			if !haveNum || i+1 >= len(s) {
				return row, 0, fmt.Errorf("malformed fraction in %q", s)
			}
			den := 0
			j := i + 1
			for ; j < len(s) && s[j] >= '0' && s[j] <= '9'; j++ {
				den = den*10 + int(s[j]-'0')
			}
			if den == 0 || Den%den != 0 {
				return row, 0, fmt.Errorf("unsupported denominator in %q", s)
			}
			tran += sign * num * (Den / den)
			num = 0
			haveNum = false
			sign = 1
			i = j - 1
		case c == 'x' || c == 'y' || c == 'z':
			coef := sign
			if haveNum {
				coef = sign * num
				num = 0
				haveNum = false
			}
			row[int(c-'x')] += coef
			sign = 1
		default:
			return row, 0, fmt.Errorf("unexpected character %q in %q", c, s)
		}
	}
	flush()
	tran = ((tran % Den) + Den) % Den
	return row, tran, nil
}

// Triplet formats the operation in conventional notation, with the
// translation normalized to [0, 1).
func (o Op) Triplet() string {
	var parts [3]string
	for i := 0; i < 3; i++ {
		var b strings.Builder
		for j, letter := range [3]byte{'x', 'y', 'z'} {
			c := o.Rot[i][j]
			if c == 0 {
				continue
			}
			if c > 0 && b.Len() > 0 {
				b.WriteByte('+')
			}
			if c == -1 {
				b.WriteByte('-')
			} else if c != 1 {
				fmt.Fprintf(&b, "%d", c)
			}
			b.WriteByte(letter)
		}
		if t := o.Tran[i]; t != 0 {
			g := gcd(t, Den)
			if b.Len() > 0 {
				b.WriteByte('+')
			}
			fmt.Fprintf(&b, "%d/%d", t/g, Den/g)
		}
		if b.Len() == 0 {
			b.WriteByte('0')
		}
		parts[i] = b.String()
	}
	return parts[0] + "," + parts[1] + "," + parts[2]
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
