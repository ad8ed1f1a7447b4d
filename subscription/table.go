// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package subscription

import opcua "github.com/edgeo-scada/opcua-monitor"

// itemKey identifies a monitored attribute of a client node.
type itemKey struct {
	handle uint64
	attr   opcua.AttributeID
}

// monitoredItem is one live server-side monitored item.
type monitoredItem struct {
	handle uint64
	attr   opcua.AttributeID
	id     uint32
	live   bool
}

func (it monitoredItem) key() itemKey { return itemKey{it.handle, it.attr} }

// itemTable owns the monitored items of a subscription. Both indices refer
// to slots in items so that an item is reachable by (handle, attribute) and
// by server item id and removal through either path clears both.
type itemTable struct {
	items []monitoredItem
	free  []int
	byKey map[itemKey]int
	byID  map[uint32]int
}

func newItemTable() *itemTable {
	return &itemTable{
		byKey: make(map[itemKey]int),
		byID:  make(map[uint32]int),
	}
}

// insert stores an item. Items previously stored under the same key or the
// same server id are evicted and returned.
func (t *itemTable) insert(handle uint64, attr opcua.AttributeID, id uint32) []monitoredItem {
	var evicted []monitoredItem
	if it, ok := t.removeKey(itemKey{handle, attr}); ok {
		evicted = append(evicted, it)
	}
	if it, ok := t.removeID(id); ok {
		evicted = append(evicted, it)
	}

	it := monitoredItem{handle: handle, attr: attr, id: id, live: true}
	var slot int
	if n := len(t.free); n > 0 {
		slot = t.free[n-1]
		t.free = t.free[:n-1]
		t.items[slot] = it
	} else {
		slot = len(t.items)
		t.items = append(t.items, it)
	}
	t.byKey[it.key()] = slot
	t.byID[id] = slot
	return evicted
}

func (t *itemTable) lookupKey(handle uint64, attr opcua.AttributeID) (monitoredItem, bool) {
	slot, ok := t.byKey[itemKey{handle, attr}]
	if !ok {
		return monitoredItem{}, false
	}
	return t.items[slot], true
}

func (t *itemTable) lookupID(id uint32) (monitoredItem, bool) {
	slot, ok := t.byID[id]
	if !ok {
		return monitoredItem{}, false
	}
	return t.items[slot], true
}

func (t *itemTable) removeKey(k itemKey) (monitoredItem, bool) {
	slot, ok := t.byKey[k]
	if !ok {
		return monitoredItem{}, false
	}
	return t.release(slot), true
}

func (t *itemTable) removeID(id uint32) (monitoredItem, bool) {
	slot, ok := t.byID[id]
	if !ok {
		return monitoredItem{}, false
	}
	return t.release(slot), true
}

func (t *itemTable) release(slot int) monitoredItem {
	it := t.items[slot]
	delete(t.byKey, it.key())
	delete(t.byID, it.id)
	t.items[slot] = monitoredItem{}
	t.free = append(t.free, slot)
	return it
}

// all returns the live items in slot order.
func (t *itemTable) all() []monitoredItem {
	out := make([]monitoredItem, 0, len(t.byKey))
	for _, it := range t.items {
		if it.live {
			out = append(out, it)
		}
	}
	return out
}

func (t *itemTable) len() int { return len(t.byID) }

func (t *itemTable) clear() {
	t.items = nil
	t.free = nil
	clear(t.byKey)
	clear(t.byID)
}
