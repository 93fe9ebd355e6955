package Workloads

import "github.com/g-m-twostay/probe-maps/Maps"

// Stats counts what happened during a Replay.
type Stats struct {
	Inserts, Overwrites int
	Hits, Misses        int
	Removes, NoOps      int // deletes that found their key, deletes that didn't
}

// Replay applies every operation of w to m in order.
func Replay(m Maps.Map[string, string], w *Workload) (s Stats) {
	for _, op := range w.Operations {
		switch op.Op {
		case OpInsert:
			if _, had := m.Insert(op.Key, op.Value); had {
				s.Overwrites++
			} else {
				s.Inserts++
			}
		case OpGet:
			if _, ok := m.Get(op.Key); ok {
				s.Hits++
			} else {
				s.Misses++
			}
		case OpDelete:
			if _, ok := m.Remove(op.Key); ok {
				s.Removes++
			} else {
				s.NoOps++
			}
		}
	}
	return
}
