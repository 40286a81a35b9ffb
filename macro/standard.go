package macro

import (
	"github.com/katalvlaran/minitip/exprstore"
	"github.com/katalvlaran/minitip/vartable"
)

// installStandard populates the catalogue with the four macros every
// minitip session starts with: H(a), H(a|b), I(a;b), I(a;b|c). They are
// marked Standard so Add/Delete refuse to touch their names, and they
// occupy the first slots so Slots() lists them first.
func (c *Catalogue) installStandard() {
	slot0 := vartable.Bit(0)
	slot1 := vartable.Bit(1)
	slot2 := vartable.Bit(2)

	hA := exprstore.New(exprstore.KindMacroBody)
	hA.Terms = append(hA.Terms, exprstore.Term{Subset: slot0, Coeff: 1})

	hAB := exprstore.New(exprstore.KindMacroBody)
	hAB.Terms = append(hAB.Terms,
		exprstore.Term{Subset: slot0.Union(slot1), Coeff: 1},
		exprstore.Term{Subset: slot1, Coeff: -1},
	)

	iAB := exprstore.New(exprstore.KindMacroBody)
	iAB.Terms = append(iAB.Terms,
		exprstore.Term{Subset: slot0, Coeff: 1},
		exprstore.Term{Subset: slot1, Coeff: 1},
		exprstore.Term{Subset: slot0.Union(slot1), Coeff: -1},
	)

	iABC := exprstore.New(exprstore.KindMacroBody)
	iABC.Terms = append(iABC.Terms,
		exprstore.Term{Subset: slot0.Union(slot2), Coeff: 1},
		exprstore.Term{Subset: slot1.Union(slot2), Coeff: 1},
		exprstore.Term{Subset: slot2, Coeff: -1},
		exprstore.Term{Subset: slot0.Union(slot1).Union(slot2), Coeff: -1},
	)

	c.slots = append(c.slots,
		&Descriptor{Name: "H", Arity: 1, Signature: 0, Body: hA, Standard: true},
		&Descriptor{Name: "H", Arity: 2, Signature: 0b1, Body: hAB, Standard: true},
		&Descriptor{Name: "I", Arity: 2, Signature: 0b0, Body: iAB, Standard: true},
		&Descriptor{Name: "I", Arity: 3, Signature: 0b10, Body: iABC, Standard: true},
	)
}
