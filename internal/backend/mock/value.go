package mock

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/rng"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
)

// value is the result of evaluating a node under one candidate
// assignment. Only scalar sorts need a value: ARRAY_SELECT is
// evaluated by walking the ARRAY_STORE chain directly in eval, so no
// node ever needs to produce an "array" value of its own.
type value struct {
	kind smtsort.Kind
	b    bool
	n    *big.Int // INT and BV
	r    *big.Rat // REAL
}

func (v value) String() string {
	switch v.kind {
	case smtsort.BOOL:
		return fmt.Sprintf("%t", v.b)
	case smtsort.REAL:
		return v.r.RatString()
	default:
		return v.n.String()
	}
}

// valuesEqual compares by semantic content, not struct identity:
// value embeds pointer fields (n, r), so Go's == would compare
// addresses rather than the numbers they point to.
func valuesEqual(a, b value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case smtsort.BOOL:
		return a.b == b.b
	case smtsort.REAL:
		return a.r.Cmp(b.r) == 0
	default:
		return a.n.Cmp(b.n) == 0
	}
}

func boolValue(b bool) value    { return value{kind: smtsort.BOOL, b: b} }
func intValue(n *big.Int) value { return value{kind: smtsort.INT, n: n} }
func realValue(r *big.Rat) value { return value{kind: smtsort.REAL, r: r} }
func bvValue(n *big.Int, width uint32) value {
	return value{kind: smtsort.BV, n: maskBV(n, width)}
}

// maskBV reduces n into the unsigned range of a width-bit bit-vector.
func maskBV(n *big.Int, width uint32) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	m := new(big.Int).Mod(n, mod)
	if m.Sign() < 0 {
		m.Add(m, mod)
	}
	return m
}

// signedBV reinterprets the unsigned width-bit payload of n as a
// two's-complement signed value.
func signedBV(n *big.Int, width uint32) *big.Int {
	half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	if n.Cmp(half) < 0 {
		return new(big.Int).Set(n)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return new(big.Int).Sub(n, mod)
}

// sample draws a uniformly random assignment for every free id in
// vars, using env's own RNG stream so repeated CheckSat tries explore
// different candidates off the same seeded sequence.
func sample(r *rng.RNGenerator, vars map[uint64]varInfo) map[uint64]value {
	env := make(map[uint64]value, len(vars))
	for id, info := range vars {
		switch info.kind {
		case smtsort.BOOL:
			env[id] = boolValue(r.PickWithProb(50))
		case smtsort.BV:
			width := info.width
			if width == 0 {
				width = 1
			}
			bits := make([]byte, 0, width)
			for i := uint32(0); i < width; i++ {
				if r.PickWithProb(50) {
					bits = append(bits, 1)
				} else {
					bits = append(bits, 0)
				}
			}
			n := new(big.Int)
			for i := len(bits) - 1; i >= 0; i-- {
				n.Lsh(n, 1)
				if bits[i] == 1 {
					n.SetBit(n, 0, 1)
				}
			}
			env[id] = bvValue(n, width)
		case smtsort.INT:
			v := int64(r.PickUint32Range(0, 1<<20)) - (1 << 19)
			env[id] = intValue(big.NewInt(v))
		case smtsort.REAL:
			num := int64(r.PickUint32Range(0, 1<<16)) - (1 << 15)
			den := int64(r.PickUint32Range(1, 1<<8))
			env[id] = realValue(big.NewRat(num, den))
		default:
			env[id] = boolValue(false)
		}
	}
	return env
}

// eval interprets n under env, recursing through compound operators.
// ARRAY_SELECT is resolved structurally: it walks the chain of
// ARRAY_STORE nodes looking for the innermost store whose index
// evaluates equal to the requested index, falling back to a
// deterministic default derived from the base array's id when the
// chain bottoms out at an uninterpreted array constant.
func eval(n *node, env map[uint64]value) (value, error) {
	if n == nil {
		return value{}, errors.New("mock: eval: nil node")
	}
	switch n.leaf {
	case leafValue:
		return n.literalValue(), nil
	case leafConst, leafVar:
		v, ok := env[n.id]
		if !ok {
			return value{}, errors.Errorf("mock: eval: no assignment for %s", n.name)
		}
		return v, nil
	}

	if n.kind == opmgr.ARRAY_SELECT {
		return evalSelect(n.args[0], n.args[1], n.sortKind, n.bvWidth, env)
	}

	args := make([]value, len(n.args))
	for i, a := range n.args {
		v, err := eval(a, env)
		if err != nil {
			return value{}, err
		}
		args[i] = v
	}
	return applyOp(n, args)
}

func (n *node) literalValue() value {
	switch n.sortKind {
	case smtsort.BOOL:
		return boolValue(n.litBool)
	case smtsort.BV:
		return bvValue(n.litNum, n.bvWidth)
	case smtsort.REAL:
		return realValue(n.litReal)
	default:
		return intValue(n.litNum)
	}
}

// evalSelect evaluates select(arr, idx) by recursing through store
// nodes without ever materializing a value for the array itself.
func evalSelect(arr, idx *node, elemKind smtsort.Kind, elemWidth uint32, env map[uint64]value) (value, error) {
	idxVal, err := eval(idx, env)
	if err != nil {
		return value{}, err
	}
	for arr.kind == opmgr.ARRAY_STORE {
		storeIdx, err := eval(arr.args[1], env)
		if err != nil {
			return value{}, err
		}
		if valuesEqual(storeIdx, idxVal) {
			return eval(arr.args[2], env)
		}
		arr = arr.args[0]
	}
	// Bottomed out at a free array constant/variable: every unwritten
	// index maps to the same fixed default for that array, derived
	// from its id so repeated selects at the same index are stable.
	h := fnvHash(arr.id, idxVal)
	switch elemKind {
	case smtsort.BOOL:
		return boolValue(h%2 == 0), nil
	case smtsort.BV:
		return bvValue(new(big.Int).SetUint64(h), elemWidth), nil
	case smtsort.REAL:
		return realValue(big.NewRat(int64(h%1000), 1)), nil
	default:
		return intValue(new(big.Int).SetUint64(h)), nil
	}
}

func fnvHash(id uint64, idx value) uint64 {
	h := uint64(1469598103934665603)
	mix := func(x uint64) {
		h ^= x
		h *= 1099511628211
	}
	mix(id)
	mix(uint64(idx.kind))
	if idx.n != nil {
		mix(idx.n.Uint64())
	}
	if idx.b {
		mix(1)
	}
	return h
}

func applyOp(n *node, a []value) (value, error) {
	width := n.bvWidth
	switch n.kind {
	case opmgr.EQUAL:
		return boolValue(valuesEqual(a[0], a[1])), nil
	case opmgr.DISTINCT:
		for i := 0; i < len(a); i++ {
			for j := i + 1; j < len(a); j++ {
				if valuesEqual(a[i], a[j]) {
					return boolValue(false), nil
				}
			}
		}
		return boolValue(true), nil
	case opmgr.ITE:
		if a[0].b {
			return a[1], nil
		}
		return a[2], nil

	case opmgr.NOT:
		return boolValue(!a[0].b), nil
	case opmgr.AND:
		return boolValue(foldBool(a, func(x, y bool) bool { return x && y })), nil
	case opmgr.OR:
		return boolValue(foldBool(a, func(x, y bool) bool { return x || y })), nil
	case opmgr.XOR:
		return boolValue(foldBool(a, func(x, y bool) bool { return x != y })), nil
	case opmgr.IMPLIES:
		return boolValue(!a[0].b || a[1].b), nil

	case opmgr.BV_ADD:
		return bvValue(new(big.Int).Add(a[0].n, a[1].n), width), nil
	case opmgr.BV_SUB:
		return bvValue(new(big.Int).Sub(a[0].n, a[1].n), width), nil
	case opmgr.BV_MULT:
		return bvValue(new(big.Int).Mul(a[0].n, a[1].n), width), nil
	case opmgr.BV_NEG:
		return bvValue(new(big.Int).Neg(a[0].n), width), nil
	case opmgr.BV_UDIV:
		if a[1].n.Sign() == 0 {
			return bvValue(maskBV(big.NewInt(-1), width), width), nil
		}
		return bvValue(new(big.Int).Div(a[0].n, a[1].n), width), nil
	case opmgr.BV_UREM:
		if a[1].n.Sign() == 0 {
			return a[0], nil
		}
		return bvValue(new(big.Int).Mod(a[0].n, a[1].n), width), nil
	case opmgr.BV_SDIV, opmgr.BV_SREM:
		return evalSignedDivRem(n.kind, a[0].n, a[1].n, width)

	case opmgr.BV_AND:
		return bvValue(new(big.Int).And(a[0].n, a[1].n), width), nil
	case opmgr.BV_OR:
		return bvValue(new(big.Int).Or(a[0].n, a[1].n), width), nil
	case opmgr.BV_XOR:
		return bvValue(new(big.Int).Xor(a[0].n, a[1].n), width), nil
	case opmgr.BV_NOT:
		return bvValue(new(big.Int).Not(a[0].n), width), nil
	case opmgr.BV_NAND:
		return bvValue(new(big.Int).Not(new(big.Int).And(a[0].n, a[1].n)), width), nil
	case opmgr.BV_NOR:
		return bvValue(new(big.Int).Not(new(big.Int).Or(a[0].n, a[1].n)), width), nil
	case opmgr.BV_XNOR:
		return bvValue(new(big.Int).Not(new(big.Int).Xor(a[0].n, a[1].n)), width), nil

	case opmgr.BV_SHL:
		return bvValue(new(big.Int).Lsh(a[0].n, uint(a[1].n.Uint64())), width), nil
	case opmgr.BV_LSHR:
		return bvValue(new(big.Int).Rsh(a[0].n, uint(a[1].n.Uint64())), width), nil
	case opmgr.BV_ASHR:
		srcWidth := n.args[0].bvWidth
		sv := signedBV(a[0].n, srcWidth)
		return bvValue(new(big.Int).Rsh(sv, uint(a[1].n.Uint64())), width), nil

	case opmgr.BV_ULT:
		return boolValue(a[0].n.Cmp(a[1].n) < 0), nil
	case opmgr.BV_ULE:
		return boolValue(a[0].n.Cmp(a[1].n) <= 0), nil
	case opmgr.BV_UGT:
		return boolValue(a[0].n.Cmp(a[1].n) > 0), nil
	case opmgr.BV_UGE:
		return boolValue(a[0].n.Cmp(a[1].n) >= 0), nil
	case opmgr.BV_SLT, opmgr.BV_SLE, opmgr.BV_SGT, opmgr.BV_SGE:
		return evalSignedCompare(n.kind, a[0].n, a[1].n, n.args[0].bvWidth)

	case opmgr.BV_CONCAT:
		acc := new(big.Int).Set(a[0].n)
		w := n.args[0].bvWidth
		for i := 1; i < len(a); i++ {
			acc.Lsh(acc, uint(n.args[i].bvWidth))
			acc.Or(acc, a[i].n)
			w += n.args[i].bvWidth
		}
		return bvValue(acc, w), nil
	case opmgr.BV_COMP:
		if a[0].n.Cmp(a[1].n) == 0 {
			return bvValue(big.NewInt(1), 1), nil
		}
		return bvValue(big.NewInt(0), 1), nil
	case opmgr.BV_EXTRACT:
		hi, lo := n.indices[0], n.indices[1]
		shifted := new(big.Int).Rsh(a[0].n, uint(lo))
		return bvValue(shifted, hi-lo+1), nil
	case opmgr.BV_REPEAT:
		srcWidth := n.args[0].bvWidth
		times := n.indices[0]
		acc := new(big.Int)
		for i := uint32(0); i < times; i++ {
			acc.Lsh(acc, uint(srcWidth))
			acc.Or(acc, a[0].n)
		}
		return bvValue(acc, srcWidth*times), nil
	case opmgr.BV_ZERO_EXTEND:
		return bvValue(new(big.Int).Set(a[0].n), width), nil
	case opmgr.BV_SIGN_EXTEND:
		srcWidth := n.args[0].bvWidth
		return bvValue(signedBV(a[0].n, srcWidth), width), nil
	case opmgr.BV_ROTATE_LEFT, opmgr.BV_ROTATE_RIGHT:
		return evalRotate(n.kind, a[0].n, n.indices[0], n.args[0].bvWidth)
	case opmgr.BV_REDAND:
		return bvValue(big.NewInt(int64(allOnes(a[0].n, n.args[0].bvWidth))), 1), nil
	case opmgr.BV_REDOR:
		v := int64(0)
		if a[0].n.Sign() != 0 {
			v = 1
		}
		return bvValue(big.NewInt(v), 1), nil
	case opmgr.BV_REDXOR:
		parity := 0
		w := n.args[0].bvWidth
		for i := uint32(0); i < w; i++ {
			if a[0].n.Bit(int(i)) == 1 {
				parity ^= 1
			}
		}
		return bvValue(big.NewInt(int64(parity)), 1), nil

	default:
		return value{}, errors.Errorf("mock: eval: operator %s not supported", n.kind)
	}
}

func foldBool(a []value, op func(x, y bool) bool) bool {
	acc := a[0].b
	for _, v := range a[1:] {
		acc = op(acc, v.b)
	}
	return acc
}

func allOnes(n *big.Int, width uint32) int {
	full := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(width)), big.NewInt(1))
	if n.Cmp(full) == 0 {
		return 1
	}
	return 0
}

func evalSignedDivRem(kind opmgr.Kind, x, y *big.Int, width uint32) (value, error) {
	sx, sy := signedBV(x, width), signedBV(y, width)
	if sy.Sign() == 0 {
		if kind == opmgr.BV_SDIV {
			if sx.Sign() >= 0 {
				return bvValue(maskBV(big.NewInt(-1), width), width), nil
			}
			return bvValue(big.NewInt(1), width), nil
		}
		return bvValue(x, width), nil
	}
	q := new(big.Int).Quo(sx, sy)
	if kind == opmgr.BV_SDIV {
		return bvValue(q, width), nil
	}
	r := new(big.Int).Rem(sx, sy)
	return bvValue(r, width), nil
}

func evalSignedCompare(kind opmgr.Kind, x, y *big.Int, width uint32) (value, error) {
	sx, sy := signedBV(x, width), signedBV(y, width)
	c := sx.Cmp(sy)
	switch kind {
	case opmgr.BV_SLT:
		return boolValue(c < 0), nil
	case opmgr.BV_SLE:
		return boolValue(c <= 0), nil
	case opmgr.BV_SGT:
		return boolValue(c > 0), nil
	default:
		return boolValue(c >= 0), nil
	}
}

func evalRotate(kind opmgr.Kind, x *big.Int, amount, width uint32) (value, error) {
	if width == 0 {
		return value{}, errors.New("mock: eval: zero-width rotate")
	}
	amount %= width
	if amount == 0 {
		return bvValue(new(big.Int).Set(x), width), nil
	}
	if kind == opmgr.BV_ROTATE_RIGHT {
		amount = width - amount
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	hi := new(big.Int).Lsh(x, uint(amount))
	hi.Mod(hi, mod)
	lo := new(big.Int).Rsh(x, uint(width-amount))
	return bvValue(new(big.Int).Or(hi, lo), width), nil
}
