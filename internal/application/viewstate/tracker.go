// Package viewstate numera las cargas de cada vista por usuario. Al empezar una carga
// nueva se cancela la anterior, y una carga superada no puede publicar su resultado.
package viewstate

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded otra carga más reciente de la misma vista ya está en curso.
var ErrSuperseded = errors.New("viewstate: carga superada por una más reciente")

// Key identifica una vista de un usuario.
type Key struct {
	View   string
	Viewer string
}

// Ticket comprobante de una carga en curso.
type Ticket struct {
	key        Key
	Generation uint64
}

type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

// Tracker registro concurrente de cargas por vista.
type Tracker struct {
	mu    sync.Mutex
	seq   map[Key]uint64
	slots map[Key]*slot
}

// NewTracker construye un tracker vacío.
func NewTracker() *Tracker {
	return &Tracker{seq: map[Key]uint64{}, slots: map[Key]*slot{}}
}

// Begin registra una carga nueva y cancela la anterior de la misma vista.
// El contexto devuelto debe usarse para las consultas de esta carga.
func (t *Tracker) Begin(ctx context.Context, key Key) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.slots[key]; ok {
		prev.cancel()
	}
	t.seq[key]++
	gen := t.seq[key]
	t.slots[key] = &slot{gen: gen, cancel: cancel}
	return ctx, Ticket{key: key, Generation: gen}
}

// Finish cierra la carga. Devuelve ErrSuperseded si otra carga empezó después;
// en ese caso el resultado no debe publicarse.
func (t *Tracker) Finish(tk Ticket) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.slots[tk.key]
	if !ok || cur.gen != tk.Generation {
		return ErrSuperseded
	}
	cur.cancel()
	delete(t.slots, tk.key)
	return nil
}

// Latest última generación emitida para la vista (0 si nunca se cargó).
func (t *Tracker) Latest(key Key) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq[key]
}
