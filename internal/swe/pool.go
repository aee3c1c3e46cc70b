package swe

import "sync"

// FieldPool recycles scratch fields of a fixed length, sparing the
// differencers a fresh allocation on every stage evaluation.
type FieldPool struct {
	pool sync.Pool
	size int
}

func NewFieldPool(size int) *FieldPool {
	return &FieldPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make(Field, size)
			},
		},
	}
}

func (p *FieldPool) Size() int { return p.size }

func (p *FieldPool) Get() Field {
	return p.pool.Get().(Field)
}

func (p *FieldPool) Put(f Field) {
	if len(f) != p.size {
		return
	}
	for i := range f {
		f[i] = 0
	}
	p.pool.Put(f)
}
