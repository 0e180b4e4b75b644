// seehuhn.de/go/sketch - a raster drawing engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package history implements a linear undo/redo log.
//
// A [Log] stores a list of items together with a cursor, the head.  The
// items before the head are active, the items after it have been undone
// and can be redone.  Committing a new item discards everything after the
// head.
package history

// Log is an append-only list of items with an undo cursor.
// The zero value is an empty log, ready to use.
//
// Invariant: 0 <= Head() <= Len().
type Log[T any] struct {
	items []T
	head  int
}

// Commit discards all undone items and appends item as the new last
// active item.
func (l *Log[T]) Commit(item T) {
	clear(l.items[l.head:]) // release references for the garbage collector
	l.items = append(l.items[:l.head], item)
	l.head = len(l.items)
}

// Undo moves the head back by one item.
// If there is nothing to undo, Undo returns false and does nothing.
func (l *Log[T]) Undo() bool {
	if l.head == 0 {
		return false
	}
	l.head--
	return true
}

// Redo moves the head forward by one item.
// If there is nothing to redo, Redo returns false and does nothing.
func (l *Log[T]) Redo() bool {
	if l.head == len(l.items) {
		return false
	}
	l.head++
	return true
}

// CanUndo reports whether [Log.Undo] would succeed.
func (l *Log[T]) CanUndo() bool {
	return l.head > 0
}

// CanRedo reports whether [Log.Redo] would succeed.
func (l *Log[T]) CanRedo() bool {
	return l.head < len(l.items)
}

// Head returns the number of active items.
func (l *Log[T]) Head() int {
	return l.head
}

// Len returns the total number of items, including undone ones.
func (l *Log[T]) Len() int {
	return len(l.items)
}

// At returns item i, where 0 <= i < Len().
func (l *Log[T]) At(i int) T {
	return l.items[i]
}

// Items returns all items, active ones first.  The returned slice must not
// be modified.
func (l *Log[T]) Items() []T {
	return l.items
}

// Active returns the active items.  The returned slice must not be
// modified.
func (l *Log[T]) Active() []T {
	return l.items[:l.head]
}

// Redoable returns the items which have been undone, in the order in
// which [Log.Redo] would restore them.  The returned slice must not be
// modified.
func (l *Log[T]) Redoable() []T {
	return l.items[l.head:]
}
