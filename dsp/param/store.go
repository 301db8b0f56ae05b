package param

import (
	"errors"
	"fmt"
)

// Errors returned by Store.
var (
	ErrUnknownParam   = errors.New("param: unknown parameter")
	ErrDuplicateParam = errors.New("param: duplicate parameter id")
)

// Store is an ordered set of parameters addressed by ID.
//
// Lookups and setters are for the control side. SetSampleRate, Advance and
// Reset walk the parameters in order without allocating and belong to the
// audio side.
type Store struct {
	params []*Param
	byID   map[string]*Param
}

// NewStore builds a store from params. IDs must be unique.
func NewStore(params ...*Param) (*Store, error) {
	s := &Store{
		params: make([]*Param, 0, len(params)),
		byID:   make(map[string]*Param, len(params)),
	}
	for _, p := range params {
		if p == nil {
			continue
		}
		if _, ok := s.byID[p.ID()]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParam, p.ID())
		}
		s.params = append(s.params, p)
		s.byID[p.ID()] = p
	}
	return s, nil
}

// Get returns the parameter with the given ID.
func (s *Store) Get(id string) (*Param, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Params returns the parameters in registration order. The slice must not
// be modified.
func (s *Store) Params() []*Param {
	return s.params
}

// Len returns the number of parameters.
func (s *Store) Len() int {
	return len(s.params)
}

// SetNormalized publishes a normalized target for id.
func (s *Store) SetNormalized(id string, v float64) error {
	p, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, id)
	}
	p.SetNormalized(v)
	return nil
}

// SetPlain publishes a plain target for id.
func (s *Store) SetPlain(id string, v float64) error {
	p, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, id)
	}
	p.SetPlain(v)
	return nil
}

// SetString parses display text for id and publishes it.
func (s *Store) SetString(id, text string) error {
	p, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, id)
	}
	return p.SetString(text)
}

// SetSampleRate updates smoothing step counts of every parameter.
func (s *Store) SetSampleRate(sampleRate float64) {
	for _, p := range s.params {
		p.SetSampleRate(sampleRate)
	}
}

// Advance moves every parameter n samples forward.
func (s *Store) Advance(n int) {
	for _, p := range s.params {
		p.Advance(n)
	}
}

// Reset snaps every parameter to its published target.
func (s *Store) Reset() {
	for _, p := range s.params {
		p.Reset()
	}
}
