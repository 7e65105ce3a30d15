package asc

import "github.com/wippyai/asc-runtime/errors"

// MaxRecursionDepth bounds pointer-following decodes. Guest data can form
// cycles or arbitrarily deep graphs; past this depth decoding stops.
const MaxRecursionDepth = 128

// CheckDepth fails with RecursionLimitReached when depth exceeds limit.
func CheckDepth(depth, limit int) error {
	if depth > limit {
		return errors.RecursionLimit(depth, limit)
	}
	return nil
}

// Get reads the object at p on behalf of a decoder that is depth levels deep.
func Get[C any, PC Object[C]](h Heap, p Ptr[C], depth int) (*C, error) {
	return GetWithLimit[C, PC](h, p, depth, MaxRecursionDepth)
}

// GetWithLimit is Get with a caller-chosen depth bound.
func GetWithLimit[C any, PC Object[C]](h Heap, p Ptr[C], depth, limit int) (*C, error) {
	if err := CheckDepth(depth, limit); err != nil {
		return nil, err
	}
	return ReadObj[C, PC](h, p)
}

// GetAll reads every object behind ptrs, each one level below depth.
func GetAll[C any, PC Object[C]](h Heap, ptrs []Ptr[C], depth int) ([]*C, error) {
	out := make([]*C, 0, len(ptrs))
	for _, p := range ptrs {
		obj, err := Get[C, PC](h, p, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}
