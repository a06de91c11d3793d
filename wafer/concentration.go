package wafer

import (
	"fmt"
	"math/big"

	"github.com/ritprem/ritprem/element"
)

// Concentration is the density of one dopant species, in atoms per cm³.
type Concentration struct {
	Element element.Element
	Density *big.Int
}

// NewConcentration returns a concentration owning its own copy of density.
func NewConcentration(e element.Element, density *big.Int) Concentration {
	return Concentration{Element: e, Density: copyInt(density)}
}

// Clone returns a deep copy; the density is not shared.
func (c Concentration) Clone() Concentration {
	return Concentration{Element: c.Element, Density: copyInt(c.Density)}
}

func (c Concentration) String() string {
	return fmt.Sprintf("{concentration: %s, name:%s}", densityString(c.Density), c.Element.Name)
}

func cloneConcentration(c *Concentration) *Concentration {
	dup := c.Clone()
	return &dup
}

func copyInt(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}

func densityString(x *big.Int) string {
	if x == nil {
		return "0"
	}
	return x.String()
}

// Dose returns base·10^exponent, the way doses are written on a process
// sheet (2e15 is Dose(2, 15)). A negative exponent is treated as zero.
func Dose(base int64, exponent int) *big.Int {
	if exponent < 0 {
		exponent = 0
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exponent)), nil)
	return scale.Mul(scale, big.NewInt(base))
}
