// Package tunable provides named integer tuning knobs that can be
// adjusted while the robot is running.  Values are read with an atomic
// load so the control cycle never sees a torn update.
package tunable

import (
	"fmt"
	"sync/atomic"
)

type Tunable struct {
	Name  string
	value int64
}

func (t *Tunable) Add(delta int) {
	newV := atomic.AddInt64(&t.value, int64(delta))
	fmt.Println("Tunable", t.Name, "=", newV)
}

func (t *Tunable) Set(v int) {
	atomic.StoreInt64(&t.value, int64(v))
	fmt.Println("Tunable", t.Name, "=", v)
}

func (t *Tunable) Get() int {
	return int(atomic.LoadInt64(&t.value))
}

type Tunables struct {
	All []*Tunable
}

func (t *Tunables) Create(name string, value int) *Tunable {
	newTunable := &Tunable{
		Name:  name,
		value: int64(value),
	}
	t.All = append(t.All, newTunable)
	return newTunable
}

func (t *Tunables) Dump() {
	for _, tn := range t.All {
		fmt.Println("Tunable:", tn.Name, "=", tn.Get())
	}
}
